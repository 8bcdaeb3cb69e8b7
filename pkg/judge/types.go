// Package judge is the Go client for the CodeCrack platform API. It owns
// the two pieces of client-side state every front end needs: the
// authentication session lifecycle (Session) and the per-problem
// run/submit workflow (Workflow).
package judge

// User is the identity record returned by the auth endpoints.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	EmailID   string `json:"emailId"`
	Role      string `json:"role"` // "user" or "admin"
}

// Credentials is the login payload.
type Credentials struct {
	EmailID  string `json:"emailId"`
	Password string `json:"password"`
}

// Registration is the register payload.
type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	EmailID   string `json:"emailId"`
	Password  string `json:"password"`
	Age       *int   `json:"age,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Problem is the full problem view. Hidden test cases never appear here;
// the server withholds them.
type Problem struct {
	ID                string            `json:"_id"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Difficulty        string            `json:"difficulty"`
	Tags              string            `json:"tags"`
	VisibleTestCases  []VisibleTestCase `json:"visibleTestCases"`
	StartCode         []CodeStub        `json:"startCode"`
	ReferenceSolution []Solution        `json:"referenceSolution"`
	SecureURL         string            `json:"secureUrl,omitempty"`
	ThumbnailURL      string            `json:"thumbnailUrl,omitempty"`
	Duration          float64           `json:"duration,omitempty"`
}

type ProblemSummary struct {
	ID         string `json:"_id"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
	Tags       string `json:"tags"`
}

type VisibleTestCase struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation"`
}

type CodeStub struct {
	Language    string `json:"language"`
	InitialCode string `json:"initialCode"`
}

type Solution struct {
	Language     string `json:"language"`
	CompleteCode string `json:"completeCode"`
}

// SubmissionRecord is one row of a user's submission history.
type SubmissionRecord struct {
	ID              string  `json:"_id"`
	ProblemID       string  `json:"problemId"`
	Language        string  `json:"language"`
	Status          string  `json:"status"`
	Runtime         float64 `json:"runtime"`
	Memory          int     `json:"memory"`
	TestCasesPassed int     `json:"testCasesPassed"`
	TestCasesTotal  int     `json:"testCasesTotal"`
	CreatedAt       string  `json:"createdAt"`
}

// CaseResult is one judged test case from a run.
type CaseResult struct {
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output"`
	Stdout         string `json:"stdout"`
	StatusID       int    `json:"status_id"` // 3 means passed
}

// Passed reports whether this test case was accepted.
func (c CaseResult) Passed() bool {
	return c.StatusID == 3
}

type runResponse struct {
	Success   bool         `json:"success"`
	Runtime   float64      `json:"runtime"`
	Memory    int          `json:"memory"`
	TestCases []CaseResult `json:"testCases"`
}

type submitResponse struct {
	Accepted        bool    `json:"accepted"`
	PassedTestCases int     `json:"passedTestCases"`
	TotalTestCases  int     `json:"totalTestCases"`
	Runtime         float64 `json:"runtime"`
	Memory          int     `json:"memory"`
	Error           string  `json:"error"`
}

// RunOutcome is the closed set of results a run can settle into. The
// unexported marker keeps the set closed so render-time switches stay
// exhaustive when a variant is added.
type RunOutcome interface {
	runOutcome()
}

// SubmitOutcome is the closed set of results a submit can settle into.
// A submit transport failure clears the slot instead of producing a
// variant; the view treats "no result" as the failure signal.
type SubmitOutcome interface {
	submitOutcome()
}

// RunSuccess: every visible test case passed.
type RunSuccess struct {
	Runtime float64
	Memory  int
	Cases   []CaseResult
}

// RunFailure: at least one visible test case failed.
type RunFailure struct {
	Cases []CaseResult
}

// TransportError: the run request never produced a judgement.
type TransportError struct {
	Message string
}

// SubmitAccepted: every test case, hidden ones included, passed.
type SubmitAccepted struct {
	Passed  int
	Total   int
	Runtime float64
	Memory  int
}

// SubmitRejected: the solution failed scoring.
type SubmitRejected struct {
	Reason string
	Passed int
	Total  int
}

func (RunSuccess) runOutcome()     {}
func (RunFailure) runOutcome()     {}
func (TransportError) runOutcome() {}

func (SubmitAccepted) submitOutcome() {}
func (SubmitRejected) submitOutcome() {}
