package validation

import (
	"strings"

	"rodeovalidate/internal/personnel"
	"rodeovalidate/internal/registration"
)

// FieldName identifies one of the registrant fields compared against a
// matched Personnel Record.
type FieldName string

const (
	FieldIGRANumber          FieldName = "IGRANumber"
	FieldAssociation         FieldName = "Association"
	FieldLegalFirst          FieldName = "LegalFirst"
	FieldLegalLast           FieldName = "LegalLast"
	FieldPerformanceName     FieldName = "PerformanceName"
	FieldDateOfBirth         FieldName = "DateOfBirth"
	FieldSSN                 FieldName = "SSN"
	FieldCompetitionCategory FieldName = "CompetitionCategory"
	FieldAddressLine         FieldName = "AddressLine"
	FieldCity                FieldName = "City"
	FieldRegion              FieldName = "Region"
	FieldCountry             FieldName = "Country"
	FieldPostalCode          FieldName = "PostalCode"
	FieldEmail               FieldName = "Email"
	FieldCellPhone           FieldName = "CellPhone"
	FieldHomePhone           FieldName = "HomePhone"
)

// textEquals compares free text case-insensitively with whitespace
// collapsed, per §4.6 step 2.
func textEquals(a, b string) bool {
	return normalizeText(a) == normalizeText(b)
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func genderToSex(gender string) (string, bool) {
	switch gender {
	case "Cowboys":
		return "M", true
	case "Cowgirls":
		return "F", true
	default:
		return "", false
	}
}

// expectedCountry infers the country a Personnel Record implies, since the
// personnel schema carries no explicit country column: a two-letter state
// code found in personnel.CanadianRegions implies Canada, any other
// non-empty state implies USA, and an empty state skips the comparison
// entirely (comparable is false).
func expectedCountry(rec personnel.Record) (country string, comparable bool) {
	state := strings.ToUpper(strings.TrimSpace(rec.State))
	if state == "" {
		return "", false
	}
	if personnel.CanadianRegions[state] {
		return "Canada", true
	}
	return "USA", true
}

// compareFields diffs a matched registration's contestant profile against
// its Personnel Record, returning the fields that differ in declaration
// order. IGRANumber is only compared when the registrant actually
// submitted one: an absent claim isn't a mismatch, it's how most
// registrants who don't know their number look themselves up.
func compareFields(c registration.Contestant, rec personnel.Record) []FieldName {
	var mismatches []FieldName
	check := func(field FieldName, equal bool) {
		if !equal {
			mismatches = append(mismatches, field)
		}
	}

	if strings.TrimSpace(c.Association.IGRA) != "" {
		check(FieldIGRANumber, textEquals(c.Association.IGRA, rec.IGRANumber.String()))
	}
	check(FieldAssociation, textEquals(c.Association.MemberAssn, rec.Association))
	check(FieldLegalFirst, textEquals(c.FirstName, rec.LegalFirst))
	check(FieldLegalLast, textEquals(c.LastName, rec.LegalLast))
	check(FieldPerformanceName, textEquals(c.PerformanceName, rec.PerformanceName()))
	check(FieldDateOfBirth, c.DOB.DOS() == rec.BirthDate)
	check(FieldSSN, textEquals(c.SSN, rec.SSN))

	if sex, ok := genderToSex(c.Gender); ok {
		check(FieldCompetitionCategory, sex == rec.Sex)
	}

	check(FieldAddressLine, textEquals(c.Address.AddressLine1, rec.Address))
	check(FieldCity, textEquals(c.Address.City, rec.City))

	if region, ok := rec.Region(); ok {
		check(FieldRegion, textEquals(c.Address.Region, region))
	}

	if country, ok := expectedCountry(rec); ok {
		check(FieldCountry, textEquals(c.Address.Country, country))
	}

	check(FieldPostalCode, textEquals(c.Address.ZipCode, rec.Zip))
	check(FieldEmail, textEquals(c.Address.Email, rec.Email))
	check(FieldCellPhone, textEquals(c.Address.CellPhoneNo, rec.CellPhone))
	check(FieldHomePhone, textEquals(c.Address.HomePhoneNo, rec.HomePhone))

	return mismatches
}

// missingRequiredFields reports the required fields (§4.6 step 2) that are
// empty, in declaration order, for a NoValue finding. At least one of
// email/cell/home must be present; that trio counts as satisfied if any
// one is non-empty.
func missingRequiredFields(c registration.Contestant) []string {
	var missing []string
	req := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	req("FirstName", c.FirstName)
	req("LastName", c.LastName)
	if _, ok := c.DOB.Time(); !ok {
		missing = append(missing, "DateOfBirth")
	}
	req("AddressLine1", c.Address.AddressLine1)
	req("City", c.Address.City)
	req("Region", c.Address.Region)
	req("ZipCode", c.Address.ZipCode)

	if strings.TrimSpace(c.Address.Email) == "" &&
		strings.TrimSpace(c.Address.CellPhoneNo) == "" &&
		strings.TrimSpace(c.Address.HomePhoneNo) == "" {
		missing = append(missing, "Contact")
	}
	return missing
}
