package services

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/yasyhadav121/codecrack/internal/config"
	"github.com/yasyhadav121/codecrack/internal/models"
	apperrors "github.com/yasyhadav121/codecrack/pkg/errors"
	"github.com/yasyhadav121/codecrack/pkg/logger"
	"github.com/yasyhadav121/codecrack/pkg/utils"
)

// Piston-compatible execution API. One request runs one program against one
// stdin; per-test-case judging loops over cases.

type ExecuteRequest struct {
	Language       string `json:"language"`
	Version        string `json:"version"`
	Files          []File `json:"files"`
	Stdin          string `json:"stdin"`
	RunTimeout     int    `json:"run_timeout"`      // milliseconds
	CompileTimeout int    `json:"compile_timeout"`  // milliseconds
	RunMemoryLimit int    `json:"run_memory_limit"` // bytes
}

type File struct {
	Name    string `json:"name,omitempty"`
	Content string `json:"content"`
}

type ExecuteResponse struct {
	Language string `json:"language"`
	Version  string `json:"version"`
	Compile  struct {
		Stdout string `json:"stdout"`
		Stderr string `json:"stderr"`
		Code   int    `json:"code"`
	} `json:"compile"`
	Run struct {
		Stdout   string  `json:"stdout"`
		Stderr   string  `json:"stderr"`
		Code     int     `json:"code"`
		Signal   string  `json:"signal"`
		CPUTime  float64 `json:"cpu_time"` // milliseconds
		Memory   int     `json:"memory"`   // KB
		WallTime float64 `json:"wall_time"`
	} `json:"run"`
}

// Identical code+stdin resubmissions are common during a problem-solving
// session; cache executor responses for a while.
type cacheEntry struct {
	Response  *ExecuteResponse
	Timestamp time.Time
}

var (
	executionCache = make(map[string]cacheEntry)
	cacheMutex     sync.RWMutex
	cacheTTL       = 1 * time.Hour
)

func init() {
	go func() {
		for {
			time.Sleep(10 * time.Minute)
			cacheMutex.Lock()
			for key, entry := range executionCache {
				if time.Since(entry.Timestamp) > cacheTTL {
					delete(executionCache, key)
				}
			}
			cacheMutex.Unlock()
		}
	}()
}

func getCacheKey(language, code, stdin string) string {
	hash := sha256.Sum256([]byte(language + ":" + code + ":" + stdin))
	return hex.EncodeToString(hash[:])
}

// executorLanguage converts display language names to executor names.
func executorLanguage(lang string) string {
	switch models.NormalizeLanguage(lang) {
	case "C++":
		return "c++"
	case "Java":
		return "java"
	case "JavaScript":
		return "javascript"
	}
	return lang
}

func sourceFileName(lang string) string {
	switch models.NormalizeLanguage(lang) {
	case "C++":
		return "main.cpp"
	case "Java":
		return "Main.java"
	case "JavaScript":
		return "index.js"
	}
	return "code.txt"
}

// Execute runs code once against the given stdin via the remote executor.
func Execute(language, code, stdin string) (*ExecuteResponse, error) {
	cacheKey := getCacheKey(language, code, stdin)
	cacheMutex.RLock()
	if entry, ok := executionCache[cacheKey]; ok && time.Since(entry.Timestamp) < cacheTTL {
		cacheMutex.RUnlock()
		logger.Debug().Str("lang", language).Msg("Cache hit for code execution")
		return entry.Response, nil
	}
	cacheMutex.RUnlock()

	reqBody := ExecuteRequest{
		Language: executorLanguage(language),
		Version:  "*",
		Files: []File{
			{Name: sourceFileName(language), Content: code},
		},
		Stdin:          stdin,
		RunTimeout:     5000,
		CompileTimeout: 10000,
		RunMemoryLimit: 256 * 1024 * 1024,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := http.Post(config.AppConfig.ExecutorURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, apperrors.Upstream("The code executor", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Upstream("The code executor", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var result ExecuteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	logger.Info().
		Str("lang", language).
		Dur("latency", time.Since(start)).
		Msg("Executed code via remote executor")

	cacheMutex.Lock()
	executionCache[cacheKey] = cacheEntry{Response: &result, Timestamp: time.Now()}
	cacheMutex.Unlock()

	return &result, nil
}

// CaseResult is one judged test case in the shape the front end renders.
// status_id follows the Judge0 convention: 3 = accepted, 4 = wrong answer,
// 6 = compilation error, 11 = runtime error.
type CaseResult struct {
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output"`
	Stdout         string `json:"stdout"`
	StatusID       int    `json:"status_id"`
}

const (
	StatusAccepted     = 3
	StatusWrongAnswer  = 4
	StatusCompileError = 6
	StatusRuntimeError = 11
)

// maxStderrLen caps the compiler or runtime output relayed in a case
// result.
const maxStderrLen = 8 * 1024

type TestCase struct {
	Input  string
	Output string
}

// JudgeResult aggregates one full run over a set of test cases.
type JudgeResult struct {
	Cases     []CaseResult
	AllPassed bool
	Runtime   float64 // seconds, summed over cases
	Memory    int     // KB, max over cases
}

// Judge executes code against every test case and compares trimmed output.
func Judge(language, code string, cases []TestCase) (*JudgeResult, error) {
	result := &JudgeResult{AllPassed: true}

	for _, tc := range cases {
		res, err := Execute(language, code, tc.Input)
		if err != nil {
			return nil, err
		}

		cr := CaseResult{
			Stdin:          tc.Input,
			ExpectedOutput: tc.Output,
			Stdout:         res.Run.Stdout,
		}

		// A runaway program can dump megabytes of stderr; bound what
		// goes back to the client.
		switch {
		case res.Compile.Code != 0 && res.Compile.Stderr != "":
			cr.StatusID = StatusCompileError
			cr.Stdout = utils.TruncateString(res.Compile.Stderr, maxStderrLen)
		case res.Run.Code != 0:
			cr.StatusID = StatusRuntimeError
			cr.Stdout = utils.TruncateString(res.Run.Stderr, maxStderrLen)
		case strings.TrimSpace(res.Run.Stdout) == strings.TrimSpace(tc.Output):
			cr.StatusID = StatusAccepted
		default:
			cr.StatusID = StatusWrongAnswer
		}

		if cr.StatusID != StatusAccepted {
			result.AllPassed = false
		}

		result.Runtime += res.Run.CPUTime / 1000.0
		if res.Run.Memory > result.Memory {
			result.Memory = res.Run.Memory
		}

		result.Cases = append(result.Cases, cr)
	}

	return result, nil
}
