// internal/acord/specs.go
package acord

// defaultFormSpecs carries the field mapping for every ACORD form the
// engine can populate. The ACORD 125 producer block is fixed agency
// boilerplate; everything else resolves from the submission document
// or a computed-field function.
var defaultFormSpecs = []FormSpec{
	{
		FormType: "ACORD 125",
		Name:     "Commercial Insurance Application",
		Fields: []FieldSource{
			{Field: "date", Computed: "completionDate"},
			{Field: "producerName", Literal: "Hartwell Insurance Group"},
			{Field: "producerAddress", Literal: "482 Commerce Park Drive, Suite 210"},
			{Field: "producerCity", Literal: "Columbus"},
			{Field: "producerState", Literal: "OH"},
			{Field: "producerZip", Literal: "43215"},
			{Field: "producerPhone", Literal: "(614) 555-0180"},
			{Field: "producerEmail", Literal: "submissions@hartwellinsurance.example"},
			{Field: "producerCode", Literal: "HIG-4821"},
			{Field: "agencyCustomerId", Path: "id"},
			{Field: "applicantName", Path: "business.legalName"},
			{Field: "dba", Path: "business.dba"},
			{Field: "mailingAddress", Path: "business.address.line1"},
			{Field: "mailingAddress2", Path: "business.address.line2"},
			{Field: "mailingCity", Path: "business.address.city"},
			{Field: "mailingState", Path: "business.address.state"},
			{Field: "mailingZip", Path: "business.address.zipCode"},
			{Field: "feinOrSocSec", Path: "business.fein"},
			{Field: "businessType", Path: "business.entityType"},
			{Field: "naicsCode", Path: "business.naicsCode"},
			{Field: "websiteAddress", Path: "business.website"},
			{Field: "natureOfBusiness", Path: "business.description"},
			{Field: "yearsInBusiness", Path: "business.yearsInBusiness"},
			{Field: "annualRevenue", Path: "business.annualRevenue"},
			{Field: "numberOfEmployees", Path: "business.employeeCount"},
			{Field: "contactName", Computed: "contactFullName"},
			{Field: "contactPhone", Path: "contact.phone"},
			{Field: "contactEmail", Path: "contact.email"},
			{Field: "linesOfBusiness", Computed: "coverageSummary"},
		},
	},
	{
		FormType: "ACORD 126",
		Name:     "Commercial General Liability Section",
		Fields: []FieldSource{
			{Field: "date", Computed: "completionDate"},
			{Field: "applicantName", Path: "business.legalName"},
			{Field: "coverageForm", Literal: "OCCURRENCE"},
			{Field: "descriptionOfOperations", Path: "coverageAnswers.gl-operations-description"},
			{Field: "annualGrossSales", Path: "coverageAnswers.gl-gross-receipts"},
			{Field: "eachOccurrenceLimit", Path: "coverageAnswers.gl-occurrence-limit"},
			{Field: "generalAggregateLimit", Path: "coverageAnswers.gl-aggregate-limit"},
			{Field: "medicalExpenseLimit", Literal: "10000"},
			{Field: "subcontractorsUsed", Path: "coverageAnswers.gl-subcontractors"},
			{Field: "priorClaims", Path: "coverageAnswers.gl-prior-claims"},
		},
	},
	{
		FormType: "ACORD 130",
		Name:     "Workers Compensation Application",
		Fields: []FieldSource{
			{Field: "date", Computed: "completionDate"},
			{Field: "applicantName", Path: "business.legalName"},
			{Field: "feinNumber", Path: "business.fein"},
			{Field: "natureOfBusiness", Path: "business.description"},
			{Field: "totalEmployees", Path: "coverageAnswers.wc-employee-count"},
			{Field: "estimatedAnnualPayroll", Path: "coverageAnswers.wc-annual-payroll"},
			{Field: "statesOfOperation", Path: "coverageAnswers.wc-states"},
			{Field: "classCodes", Path: "coverageAnswers.wc-class-codes"},
			{Field: "experienceModifier", Path: "coverageAnswers.wc-experience-mod"},
			{Field: "liabilityEachAccident", Literal: "1000000"},
			{Field: "liabilityDiseaseEachEmployee", Literal: "1000000"},
			{Field: "liabilityDiseasePolicyLimit", Literal: "1000000"},
		},
	},
	{
		FormType: "ACORD 140",
		Name:     "Property Section",
		Fields: []FieldSource{
			{Field: "date", Computed: "completionDate"},
			{Field: "applicantName", Path: "business.legalName"},
			{Field: "premisesAddress", Path: "business.address.line1"},
			{Field: "premisesCity", Path: "business.address.city"},
			{Field: "premisesState", Path: "business.address.state"},
			{Field: "premisesZip", Path: "business.address.zipCode"},
			{Field: "buildingLimit", Path: "coverageAnswers.cp-building-value"},
			{Field: "personalPropertyLimit", Path: "coverageAnswers.cp-contents-value"},
			{Field: "constructionType", Path: "coverageAnswers.cp-construction-type"},
			{Field: "yearBuilt", Path: "coverageAnswers.cp-year-built"},
			{Field: "sprinklered", Path: "coverageAnswers.cp-sprinklered"},
			{Field: "causeOfLoss", Literal: "SPECIAL"},
			{Field: "coinsurance", Literal: "80%"},
			{Field: "valuationType", Literal: "REPLACEMENT COST"},
		},
	},
	{
		FormType: "ACORD 24",
		Name:     "Certificate of Property Insurance",
		Fields: []FieldSource{
			{Field: "date", Computed: "completionDate"},
			{Field: "producerName", Literal: "Hartwell Insurance Group"},
			{Field: "producerPhone", Literal: "(614) 555-0180"},
			{Field: "insuredName", Path: "business.legalName"},
			{Field: "insuredAddress", Path: "business.address.line1"},
			{Field: "insuredCity", Path: "business.address.city"},
			{Field: "insuredState", Path: "business.address.state"},
			{Field: "insuredZip", Path: "business.address.zipCode"},
			{Field: "descriptionOfOperations", Path: "business.description"},
		},
	},
	{
		FormType: "ACORD 127",
		Name:     "Business Auto Section",
		Fields: []FieldSource{
			{Field: "date", Computed: "completionDate"},
			{Field: "applicantName", Path: "business.legalName"},
			{Field: "natureOfBusiness", Path: "business.description"},
			{Field: "operatingRadius", Path: "coverageAnswers.ca-radius"},
			{Field: "garagingAddress", Path: "business.address.line1"},
			{Field: "garagingCity", Path: "business.address.city"},
			{Field: "garagingState", Path: "business.address.state"},
			{Field: "garagingZip", Path: "business.address.zipCode"},
		},
	},
	{
		FormType: "ACORD 129",
		Name:     "Vehicle Schedule",
		Fields: []FieldSource{
			{Field: "date", Computed: "completionDate"},
			{Field: "applicantName", Path: "business.legalName"},
			{Field: "numberOfVehicles", Path: "coverageAnswers.ca-vehicle-count"},
			{Field: "numberOfDrivers", Path: "coverageAnswers.ca-driver-count"},
			{Field: "vehicleSchedule", Path: "coverageAnswers.ca-vehicle-schedule"},
		},
	},
	{
		FormType: "ACORD 137",
		Name:     "Commercial Auto Coverages",
		Fields: []FieldSource{
			{Field: "date", Computed: "completionDate"},
			{Field: "applicantName", Path: "business.legalName"},
			{Field: "combinedSingleLimit", Literal: "1000000"},
			{Field: "medicalPayments", Literal: "5000"},
			{Field: "uninsuredMotorist", Literal: "1000000"},
			{Field: "comprehensiveDeductible", Literal: "1000"},
			{Field: "collisionDeductible", Literal: "1000"},
			{Field: "hiredAutoCoverage", Path: "coverageAnswers.ca-hired-non-owned"},
			{Field: "nonOwnedAutoCoverage", Path: "coverageAnswers.ca-hired-non-owned"},
		},
	},
	{
		FormType: "ACORD 160",
		Name:     "Business Owners Section",
		Fields: []FieldSource{
			{Field: "date", Computed: "completionDate"},
			{Field: "applicantName", Path: "business.legalName"},
			{Field: "occupiedSquareFootage", Path: "coverageAnswers.bop-square-footage"},
			{Field: "buildingOwned", Path: "coverageAnswers.bop-building-owned"},
			{Field: "liabilityLimit", Path: "coverageAnswers.bop-liability-limit"},
			{Field: "annualGrossSales", Path: "business.annualRevenue"},
			{Field: "yearsInBusiness", Path: "business.yearsInBusiness"},
		},
	},
}
