package constants

import (
	"strings"
)

type Category string

const (
	Advertising          Category = "Advertising"
	BankFees             Category = "BankFees"
	ContractorServices   Category = "ContractorServices"
	Equipment            Category = "Equipment"
	Insurance            Category = "Insurance"
	MotorVehicle         Category = "MotorVehicle"
	OfficeSupplies       Category = "OfficeSupplies"
	ProfessionalServices Category = "ProfessionalServices"
	Rent                 Category = "Rent"
	Software             Category = "Software"
	Telecommunications   Category = "Telecommunications"
	Travel               Category = "Travel"
	Utilities            Category = "Utilities"
	Other                Category = "Other"
)

var allCategories = []Category{
	Advertising,
	BankFees,
	ContractorServices,
	Equipment,
	Insurance,
	MotorVehicle,
	OfficeSupplies,
	ProfessionalServices,
	Rent,
	Software,
	Telecommunications,
	Travel,
	Utilities,
	Other,
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return Other, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]Category{
		"fuel":          MotorVehicle,
		"petrol":        MotorVehicle,
		"car":           MotorVehicle,
		"phone":         Telecommunications,
		"mobile":        Telecommunications,
		"internet":      Telecommunications,
		"accounting":    ProfessionalServices,
		"legal":         ProfessionalServices,
		"bookkeeping":   ProfessionalServices,
		"saas":          Software,
		"subscription":  Software,
		"uber":          Travel,
		"taxi":          Travel,
		"airfare":       Travel,
		"hotel":         Travel,
		"electricity":   Utilities,
		"gas":           Utilities,
		"water":         Utilities,
		"stationery":    OfficeSupplies,
		"subcontractor": ContractorServices,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	// check if it matches any category string
	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}

	return Other, false
}
