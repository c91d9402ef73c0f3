// file: internals/seeds/catalog/seed.go
package catalog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	catalogModel "roadmapguide_backend/internals/features/assessment/catalog/model"
	exportModel "roadmapguide_backend/internals/features/assessment/export/model"
	responseModel "roadmapguide_backend/internals/features/assessment/response/model"
	setupModel "roadmapguide_backend/internals/features/assessment/setup/model"
	authModel "roadmapguide_backend/internals/features/users/auth/model"
	userModel "roadmapguide_backend/internals/features/users/user/model"
)

// descriptions for the core initiative set; CSV rows outside this set get a
// generated one.
var initiativeDescriptions = map[string]string{
	"Cloud Adoption and Business Alignment":             "Ensure cloud adoption supports overall business objectives by leveraging unified visibility and secrets scanning.",
	"Achieving Key Business Outcomes":                   "Drive business outcomes by proactively identifying and mitigating risks with offensive security tooling.",
	"Maximizing ROI for Cloud Security":                 "Optimize return on investment with AI-powered threat detection and response.",
	"Integration of Cloud Security with Business Strategy": "Align cloud security goals with broader IT and business strategies on a unified platform.",
	"Driving Innovation and Value Delivery":             "Enable innovation while reducing vulnerabilities through proactive security validation.",
	"Supporting Digital Transformation":                 "Enhance digital transformation initiatives with agentless and agent-based capabilities.",
	"Balancing Rapid Adoption with Compliance":          "Maintain security compliance with secrets scanning and cloud workload protection.",
}

type csvRow struct {
	strategicGoal  string
	majorArea      string
	text           string
	options        []string
	weightingScore string
}

// Run migrates the schema and rebuilds the initiative/question catalog from
// the CSV at path. Catalog tables are replaced wholesale; user data
// (setups, responses, exports) is left alone.
func Run(db *gorm.DB, path string) error {
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.RefreshToken{},
		&authModel.TokenBlacklist{},
		&catalogModel.InitiativeModel{},
		&catalogModel.QuestionModel{},
		&setupModel.SetupModel{},
		&responseModel.ResponseModel{},
		&exportModel.PresentationModel{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	rows, err := readCatalogCSV(path)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no catalog rows found in %s", path)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&catalogModel.QuestionModel{}).Error; err != nil {
			return fmt.Errorf("clear questions: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&catalogModel.InitiativeModel{}).Error; err != nil {
			return fmt.Errorf("clear initiatives: %w", err)
		}

		titles := initiativeTitles(rows)
		if err := seedInitiatives(tx, titles); err != nil {
			return err
		}
		if err := seedSelectionQuestion(tx, titles); err != nil {
			return err
		}
		return seedQuestions(tx, rows)
	})
}

func readCatalogCSV(path string) ([]csvRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Strategic Goal", "Major CNAPP Area", "Guided Questions", "Multiple Choice Answers"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("catalog csv missing column %q", required)
		}
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		goal := strings.TrimSpace(field(record, col["Strategic Goal"]))
		// section separator rows carry no goal or a **bold** marker
		if goal == "" || strings.HasPrefix(goal, "**") {
			continue
		}

		var options []string
		for _, opt := range strings.Split(field(record, col["Multiple Choice Answers"]), ",") {
			if trimmed := strings.TrimSpace(opt); trimmed != "" {
				options = append(options, trimmed)
			}
		}

		row := csvRow{
			strategicGoal: goal,
			majorArea:     strings.TrimSpace(field(record, col["Major CNAPP Area"])),
			text:          strings.TrimSpace(field(record, col["Guided Questions"])),
			options:       options,
		}
		if idx, ok := col["Weighting Score (Maturity)"]; ok {
			row.weightingScore = strings.TrimSpace(field(record, idx))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func initiativeTitles(rows []csvRow) []string {
	seen := map[string]bool{}
	for _, row := range rows {
		seen[row.strategicGoal] = true
	}
	titles := make([]string, 0, len(seen))
	for title := range seen {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

func seedInitiatives(tx *gorm.DB, titles []string) error {
	for order, title := range titles {
		description, ok := initiativeDescriptions[title]
		if !ok {
			description = fmt.Sprintf("Focus on %s to improve cloud security maturity", strings.ToLower(title))
		}
		initiative := catalogModel.InitiativeModel{
			Title:       title,
			Description: description,
			Order:       order,
		}
		if err := tx.Create(&initiative).Error; err != nil {
			return fmt.Errorf("seed initiative %q: %w", title, err)
		}
		log.Printf("[SEED] initiative: %s", title)
	}
	return nil
}

// seedSelectionQuestion writes the reserved question whose answer is the
// user's initiative selection. It must keep its fixed id across reseeds so
// existing selection responses stay attached.
func seedSelectionQuestion(tx *gorm.DB, titles []string) error {
	rules, err := json.Marshal(catalogModel.QuestionRules{MinCount: 1, MaxCount: 3})
	if err != nil {
		return err
	}
	selection := catalogModel.QuestionModel{
		ID:             catalogModel.SelectionQuestionID,
		StrategicGoal:  "Business Initiatives",
		MajorArea:      "Strategy",
		Text:           "Please select your top Business Initiatives in Cloud Security (select 1-3)",
		Options:        pq.StringArray(titles),
		QuestionType:   catalogModel.TypeMultipleChoice,
		Required:       true,
		Rules:          datatypes.JSON(rules),
		WeightingScore: "",
		Order:          0,
	}
	if err := tx.Create(&selection).Error; err != nil {
		return fmt.Errorf("seed selection question: %w", err)
	}
	return nil
}

func seedQuestions(tx *gorm.DB, rows []csvRow) error {
	// catalog ids start after the reserved selection question
	nextID := catalogModel.SelectionQuestionID + 1
	for order, row := range rows {
		question := catalogModel.QuestionModel{
			ID:             nextID,
			StrategicGoal:  row.strategicGoal,
			MajorArea:      row.majorArea,
			Text:           row.text,
			Options:        pq.StringArray(row.options),
			QuestionType:   catalogModel.TypeSingleChoice,
			Required:       true,
			WeightingScore: row.weightingScore,
			Order:          order,
		}
		if err := tx.Create(&question).Error; err != nil {
			return fmt.Errorf("seed question %d: %w", nextID, err)
		}
		nextID++
	}
	log.Printf("[SEED] %d questions loaded", len(rows))
	return nil
}
