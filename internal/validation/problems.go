package validation

func problemNoValue(field string) Problem {
	return Problem{Name: ProblemNoValue, Data: locus("field", field)}
}

func problemNotOldEnough(age int) Problem {
	return Problem{Name: ProblemNotOldEnough, Data: locus("age", age)}
}

func problemNotEnoughRounds(rounds int) Problem {
	return Problem{Name: ProblemNotEnoughRounds, Data: locus("rounds", rounds)}
}

func problemNotAMember() Problem {
	return Problem{Name: ProblemNotAMember}
}

func problemMaybeAMember() Problem {
	return Problem{Name: ProblemMaybeAMember}
}

func problemNoPerfectMatch() Problem {
	return Problem{Name: ProblemNoPerfectMatch}
}

func problemDbMismatch(field FieldName) Problem {
	return Problem{Name: ProblemDbMismatch, Data: locus("field", string(field))}
}

func problemUnknownPartner(event EventID, round, index int) Problem {
	return Problem{Name: ProblemUnknownPartner, Data: locus("event", string(event), "round", round, "index", index)}
}

func problemTooFewPartners(event EventID, round int) Problem {
	return Problem{Name: ProblemTooFewPartners, Data: locus("event", string(event), "round", round)}
}

func problemTooManyPartners(event EventID, round int) Problem {
	return Problem{Name: ProblemTooManyPartners, Data: locus("event", string(event), "round", round)}
}

func problemUnknownEventID(event string) Problem {
	return Problem{Name: ProblemUnknownEventID, Data: locus("event", event)}
}

func problemInvalidRoundID(event EventID, round int) Problem {
	return Problem{Name: ProblemInvalidRoundID, Data: locus("event", string(event), "round", round)}
}

func problemUnregisteredPartner(event EventID, round, index int, igra string) Problem {
	return Problem{
		Name: ProblemUnregisteredPartner,
		Data: locus("event", string(event), "round", round, "index", index, "igra_number", igra),
	}
}

// problemMismatchedPartnersFull is emitted on the registrant who listed a
// partner that didn't reciprocate: it carries a full locus, since the
// mismatch is anchored to a real position in this registrant's own entry.
func problemMismatchedPartnersFull(event EventID, round, index int, igra string) Problem {
	return Problem{
		Name: ProblemMismatchedPartners,
		Data: locus("event", string(event), "round", round, "index", index, "igra_number", igra),
	}
}

// problemMismatchedPartnersPartial is emitted on the registrant who was
// listed but didn't reciprocate. They may have no entry at all for the
// (event, round) in question, so only the offending party's IGRA# is
// carried; the locus fields are omitted rather than fabricated.
func problemMismatchedPartnersPartial(igra string) Problem {
	return Problem{Name: ProblemMismatchedPartners, Data: locus("igra_number", igra)}
}

func fixContactRegistrant() Fix {
	return Fix{Name: FixContactRegistrant}
}

func fixUseThisRecord(igra string) Fix {
	return Fix{Name: FixUseThisRecord, Data: locus("igra_number", igra)}
}

func fixAddNewMember() Fix {
	return Fix{Name: FixAddNewMember}
}

func fixUpdateDatabase() Fix {
	return Fix{Name: FixUpdateDatabase}
}

func fixContactDevelopers() Fix {
	return Fix{Name: FixContactDevelopers}
}

func fixNone() Fix {
	return Fix{Name: FixNone}
}
