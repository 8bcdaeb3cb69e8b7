package main

import (
	"log"

	"github.com/yasyhadav121/codecrack/internal/config"
	"github.com/yasyhadav121/codecrack/internal/database"
	"github.com/yasyhadav121/codecrack/internal/models"
	"github.com/yasyhadav121/codecrack/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("Running migrations...")
	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.Problem{},
		&models.VisibleTestCase{},
		&models.HiddenTestCase{},
		&models.StartCode{},
		&models.ReferenceSolution{},
		&models.Submission{},
		&models.SolutionVideo{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Seeding admin user...")
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
	admin := models.User{
		ID:        utils.GenerateID(),
		FirstName: "Platform",
		LastName:  "Admin",
		EmailID:   "admin@codecrack.dev",
		Password:  string(hashed),
		Role:      models.RoleAdmin,
	}
	var existing models.User
	if err := database.DB.Where("\"emailId\" = ?", admin.EmailID).First(&existing).Error; err != nil {
		if err := database.DB.Create(&admin).Error; err != nil {
			log.Fatalf("Failed to seed admin: %v", err)
		}
	} else {
		admin = existing
	}

	log.Println("Seeding sample problem...")
	problem := models.Problem{
		ID:          utils.GenerateID(),
		Title:       "Two Sum",
		Description: "Given an array of integers and a target, print the indices of the two numbers that add up to the target.",
		Difficulty:  models.DifficultyEasy,
		Tags:        models.TagArray,
		VisibleTestCases: []models.VisibleTestCase{
			{ID: utils.GenerateID(), Input: "4\n2 7 11 15\n9", Output: "0 1", Explanation: "2 + 7 = 9, so the answer is indices 0 and 1."},
		},
		HiddenTestCases: []models.HiddenTestCase{
			{ID: utils.GenerateID(), Input: "3\n3 2 4\n6", Output: "1 2"},
			{ID: utils.GenerateID(), Input: "2\n3 3\n6", Output: "0 1"},
		},
		StartCode: []models.StartCode{
			{ID: utils.GenerateID(), Language: "C++", InitialCode: "#include <bits/stdc++.h>\nusing namespace std;\n\nint main() {\n    // your code here\n    return 0;\n}\n"},
			{ID: utils.GenerateID(), Language: "Java", InitialCode: "import java.util.*;\n\npublic class Main {\n    public static void main(String[] args) {\n        // your code here\n    }\n}\n"},
			{ID: utils.GenerateID(), Language: "JavaScript", InitialCode: "// your code here\n"},
		},
		ReferenceSolution: []models.ReferenceSolution{
			{ID: utils.GenerateID(), Language: "C++", CompleteCode: "#include <bits/stdc++.h>\nusing namespace std;\n\nint main() {\n    int n; cin >> n;\n    vector<long long> a(n);\n    for (auto &x : a) cin >> x;\n    long long t; cin >> t;\n    unordered_map<long long, int> seen;\n    for (int i = 0; i < n; i++) {\n        if (seen.count(t - a[i])) { cout << seen[t - a[i]] << \" \" << i << endl; return 0; }\n        seen[a[i]] = i;\n    }\n    return 0;\n}\n"},
			{ID: utils.GenerateID(), Language: "Java", CompleteCode: "import java.util.*;\n\npublic class Main {\n    public static void main(String[] args) {\n        Scanner sc = new Scanner(System.in);\n        int n = sc.nextInt();\n        long[] a = new long[n];\n        for (int i = 0; i < n; i++) a[i] = sc.nextLong();\n        long t = sc.nextLong();\n        Map<Long, Integer> seen = new HashMap<>();\n        for (int i = 0; i < n; i++) {\n            if (seen.containsKey(t - a[i])) { System.out.println(seen.get(t - a[i]) + \" \" + i); return; }\n            seen.put(a[i], i);\n        }\n    }\n}\n"},
			{ID: utils.GenerateID(), Language: "JavaScript", CompleteCode: "const lines = require('fs').readFileSync(0, 'utf8').split('\\n');\nconst n = parseInt(lines[0]);\nconst a = lines[1].trim().split(/\\s+/).map(Number);\nconst t = parseInt(lines[2]);\nconst seen = new Map();\nfor (let i = 0; i < n; i++) {\n    if (seen.has(t - a[i])) { console.log(seen.get(t - a[i]) + ' ' + i); process.exit(0); }\n    seen.set(a[i], i);\n}\n"},
		},
		ProblemCreator: admin.ID,
	}

	var count int64
	database.DB.Model(&models.Problem{}).Where("title = ?", problem.Title).Count(&count)
	if count == 0 {
		if err := database.DB.Create(&problem).Error; err != nil {
			log.Fatalf("Failed to seed problem: %v", err)
		}
	}

	log.Println("Seeding complete.")
}
