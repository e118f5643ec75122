// internal/catalog/data.go
package catalog

import "acord-intake/internal/models"

// defaultAliases maps legacy keys and shorthand seen in older intake
// data to canonical coverage ids.
var defaultAliases = map[string]string{
	"gl":                   "general-liability",
	"cgl":                  "general-liability",
	"wc":                   "workers-compensation",
	"workers-comp":         "workers-compensation",
	"work-comp":            "workers-compensation",
	"property":             "commercial-property",
	"auto":                 "commercial-auto",
	"business-auto":        "commercial-auto",
	"bop":                  "business-owners-policy",
	"business-owners":      "business-owners-policy",
	"professional":         "professional-liability",
	"e&o":                  "professional-liability",
	"errors-and-omissions": "professional-liability",
	"cyber":                "cyber-liability",
	"umbrella":             "umbrella-liability",
	"excess-liability":     "umbrella-liability",
}

func bound(v float64) *float64 {
	return &v
}

var defaultCoverageTypes = []CoverageType{
	{
		ID:          "general-liability",
		Name:        "General Liability",
		Description: "Covers third-party bodily injury, property damage, and personal injury claims arising from business operations.",
		Category:    "business",
		ClientTypes: []models.ClientType{models.ClientTypeBusiness},
		Forms:       []string{"ACORD 126", "ACORD 125"},
		Questions: []Question{
			{ID: "gl-operations-description", Text: "Describe your business operations", Type: QuestionTextarea, Required: true, Critical: true, TargetField: "descriptionOfOperations"},
			{ID: "gl-gross-receipts", Text: "Annual gross receipts", Type: QuestionNumber, Min: bound(0), Required: true, Critical: true, TargetField: "annualGrossSales"},
			{ID: "gl-occurrence-limit", Text: "Desired per-occurrence limit", Type: QuestionSelect, Options: []string{"500000", "1000000", "2000000"}, Required: true, Critical: true, TargetField: "eachOccurrenceLimit"},
			{ID: "gl-aggregate-limit", Text: "Desired aggregate limit", Type: QuestionSelect, Options: []string{"1000000", "2000000", "4000000"}, Required: false, TargetField: "generalAggregateLimit"},
			{ID: "gl-subcontractors", Text: "Do you hire subcontractors?", Type: QuestionSelect, Options: []string{"Yes", "No"}, Required: false, TargetField: "subcontractorsUsed"},
			{ID: "gl-prior-claims", Text: "Any liability claims in the past 5 years?", Type: QuestionSelect, Options: []string{"Yes", "No"}, Required: true, TargetField: "priorClaims"},
		},
	},
	{
		ID:          "workers-compensation",
		Name:        "Workers' Compensation",
		Description: "Covers medical expenses and lost wages for employees injured on the job; statutorily required in most states.",
		Category:    "business",
		ClientTypes: []models.ClientType{models.ClientTypeBusiness},
		Forms:       []string{"ACORD 130", "ACORD 125"},
		Questions: []Question{
			{ID: "wc-employee-count", Text: "Number of employees", Type: QuestionNumber, Min: bound(1), Required: true, Critical: true, TargetField: "totalEmployees"},
			{ID: "wc-annual-payroll", Text: "Total annual payroll", Type: QuestionNumber, Min: bound(0), Required: true, Critical: true, TargetField: "estimatedAnnualPayroll"},
			{ID: "wc-states", Text: "States where employees work", Type: QuestionText, Required: true, TargetField: "statesOfOperation"},
			{ID: "wc-class-codes", Text: "Workers' comp class codes, if known", Type: QuestionText, Required: false, TargetField: "classCodes"},
			{ID: "wc-experience-mod", Text: "Current experience modifier", Type: QuestionNumber, Min: bound(0.5), Max: bound(3), Required: false, TargetField: "experienceModifier"},
		},
	},
	{
		ID:          "commercial-property",
		Name:        "Commercial Property",
		Description: "Covers buildings, contents, and business personal property against fire, theft, and other named perils.",
		Category:    "property",
		ClientTypes: []models.ClientType{models.ClientTypeBusiness},
		Forms:       []string{"ACORD 140", "ACORD 125", "ACORD 24"},
		Questions: []Question{
			{ID: "cp-building-value", Text: "Building replacement value", Type: QuestionNumber, Min: bound(0), Required: true, Critical: true, TargetField: "buildingLimit"},
			{ID: "cp-contents-value", Text: "Contents and equipment value", Type: QuestionNumber, Min: bound(0), Required: true, TargetField: "personalPropertyLimit"},
			{ID: "cp-construction-type", Text: "Construction type", Type: QuestionSelect, Options: []string{"frame", "joisted-masonry", "non-combustible", "masonry-non-combustible", "fire-resistive"}, Required: true, TargetField: "constructionType"},
			{ID: "cp-year-built", Text: "Year the building was built", Type: QuestionNumber, Min: bound(1800), Max: bound(2100), Required: false, TargetField: "yearBuilt"},
			{ID: "cp-sprinklered", Text: "Is the building sprinklered?", Type: QuestionSelect, Options: []string{"Yes", "No"}, Required: false, TargetField: "sprinklered"},
		},
	},
	{
		ID:          "commercial-auto",
		Name:        "Commercial Auto",
		Description: "Covers vehicles owned or used by the business, including liability and physical damage.",
		Category:    "vehicle",
		ClientTypes: []models.ClientType{models.ClientTypeBusiness},
		Forms:       []string{"ACORD 127", "ACORD 129", "ACORD 137", "ACORD 125"},
		Questions: []Question{
			{ID: "ca-vehicle-count", Text: "Number of vehicles to insure", Type: QuestionNumber, Min: bound(1), Required: true, Critical: true, TargetField: "numberOfVehicles"},
			{ID: "ca-driver-count", Text: "Number of drivers", Type: QuestionNumber, Min: bound(1), Required: true, Critical: true, TargetField: "numberOfDrivers"},
			{ID: "ca-radius", Text: "Typical operating radius", Type: QuestionSelect, Options: []string{"local", "intermediate", "long-haul"}, Required: true, TargetField: "operatingRadius"},
			{ID: "ca-vehicle-schedule", Text: "Vehicle schedule (year/make/model/VIN per vehicle)", Type: QuestionTextarea, Required: false, TargetField: "vehicleSchedule"},
			{ID: "ca-hired-non-owned", Text: "Need hired and non-owned auto coverage?", Type: QuestionSelect, Options: []string{"Yes", "No"}, Required: false, TargetField: "hiredAutoCoverage"},
		},
	},
	{
		ID:          "business-owners-policy",
		Name:        "Business Owners Policy",
		Description: "Packages general liability and property coverage for eligible small businesses.",
		Category:    "business",
		ClientTypes: []models.ClientType{models.ClientTypeBusiness},
		Forms:       []string{"ACORD 160", "ACORD 125"},
		Questions: []Question{
			{ID: "bop-square-footage", Text: "Occupied square footage", Type: QuestionNumber, Min: bound(1), Max: bound(100000), Required: true, Critical: true, TargetField: "occupiedSquareFootage"},
			{ID: "bop-building-owned", Text: "Do you own the building?", Type: QuestionSelect, Options: []string{"Yes", "No"}, Required: true, TargetField: "buildingOwned"},
			{ID: "bop-liability-limit", Text: "Desired liability limit", Type: QuestionSelect, Options: []string{"300000", "500000", "1000000", "2000000"}, Required: true, TargetField: "liabilityLimit"},
		},
	},
	{
		ID:          "professional-liability",
		Name:        "Professional Liability",
		Description: "Covers errors, omissions, and negligence claims arising from professional services.",
		Category:    "business",
		ClientTypes: []models.ClientType{models.ClientTypeBoth},
		Forms:       []string{"ACORD 125"},
		Questions: []Question{
			{ID: "pl-profession", Text: "Professional services provided", Type: QuestionText, Required: true, Critical: true},
			{ID: "pl-years-experience", Text: "Years of professional experience", Type: QuestionNumber, Min: bound(0), Max: bound(80), Required: false},
			{ID: "pl-prior-acts", Text: "Need prior-acts coverage?", Type: QuestionSelect, Options: []string{"Yes", "No"}, Required: false},
			{ID: "pl-entity-endorsement", Text: "Include entity endorsement for the firm?", Type: QuestionSelect, Options: []string{"Yes", "No"}, Required: false, ClientTypes: []models.ClientType{models.ClientTypeBusiness}},
		},
	},
	{
		ID:          "cyber-liability",
		Name:        "Cyber Liability",
		Description: "Covers data breach response, network security failures, and related first- and third-party losses.",
		Category:    "additional",
		ClientTypes: []models.ClientType{models.ClientTypeBusiness},
		Forms:       []string{"ACORD 125"},
		Questions: []Question{
			{ID: "cy-records-count", Text: "Approximate number of personal records held", Type: QuestionNumber, Min: bound(0), Required: true, Critical: true},
			{ID: "cy-breach-history", Text: "Any data breaches in the past 3 years?", Type: QuestionSelect, Options: []string{"Yes", "No"}, Required: true},
			{ID: "cy-online-revenue-pct", Text: "Percentage of revenue from online sales", Type: QuestionNumber, Min: bound(0), Max: bound(100), Required: false},
		},
	},
	{
		ID:          "umbrella-liability",
		Name:        "Umbrella Liability",
		Description: "Provides excess limits above underlying general liability, auto liability, and employers liability policies.",
		Category:    "additional",
		ClientTypes: []models.ClientType{models.ClientTypeBusiness},
		Forms:       []string{"ACORD 125"},
		Questions: []Question{
			{ID: "um-desired-limit", Text: "Desired umbrella limit", Type: QuestionSelect, Options: []string{"1000000", "2000000", "5000000", "10000000"}, Required: true, Critical: true},
			{ID: "um-underlying-policies", Text: "Underlying policies in force", Type: QuestionMulti, Options: []string{"general-liability", "commercial-auto", "employers-liability"}, Required: false},
		},
	},
}
