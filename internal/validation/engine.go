// Package validation drives the two-pass algorithm that resolves each
// submitted registration against the personnel Database, checks its
// fields and event composition, cross-links declared partners, and emits
// a Report of typed findings.
package validation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"rodeovalidate/internal/personnel"
	"rodeovalidate/internal/regdb"
	"rodeovalidate/internal/registration"
	"rodeovalidate/internal/validation/metrics"
	"rodeovalidate/pkg/domain"
)

var tracer = otel.Tracer("rodeovalidate/internal/validation")

// MinimumAge is the age in whole years a registrant must have reached by
// the validation date.
const MinimumAge = 18

// pass1 is the working state carried out of per-registrant resolution and
// into the cross-registrant join.
type pass1 struct {
	registration registration.Registration
	found        *string
	links        []PartnerLink
	issues       []Issue
}

// Validate runs both passes over batch against db, evaluating age and
// go-round minimums as of now. m may be nil.
func Validate(ctx context.Context, batch registration.Batch, db *regdb.Database, now time.Time, m *metrics.Metrics) (Report, error) {
	ctx, span := tracer.Start(ctx, "validation.Validate")
	defer span.End()

	start := time.Now()
	defer func() { m.ObserveValidateLatency(time.Since(start)) }()

	states := make([]pass1, len(batch.CompletedRegistrations))

	g, gctx := errgroup.WithContext(ctx)
	for i, reg := range batch.CompletedRegistrations {
		i, reg := i, reg
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			states[i] = resolveRegistration(reg, db, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	for _, st := range states {
		m.IncrementResolution(resolutionKind(st))
		for _, issue := range st.issues {
			m.IncrementIssue(string(issue.Problem.Name))
		}
	}

	crossLinkPartners(states, db)

	report := Report{
		Results:  make([]Result, len(states)),
		Relevant: make(map[string]personnel.Record),
	}
	for i, st := range states {
		report.Results[i] = Result{
			Registration: st.registration,
			Found:        st.found,
			Partners:     st.links,
			Issues:       st.issues,
		}
		addRelevant(report.Relevant, db, st.found)
		for _, link := range st.links {
			addRelevant(report.Relevant, db, &link.IGRANumber)
		}
		for _, issue := range st.issues {
			if id, ok := issue.Fix.Data["igra_number"].(string); ok {
				addRelevant(report.Relevant, db, &id)
			}
			if id, ok := issue.Problem.Data["igra_number"].(string); ok {
				addRelevant(report.Relevant, db, &id)
			}
		}
	}
	return report, nil
}

func addRelevant(relevant map[string]personnel.Record, db *regdb.Database, igra *string) {
	if igra == nil || *igra == "" {
		return
	}
	if _, ok := relevant[*igra]; ok {
		return
	}
	if rec, ok := db.Lookup(domain.IGRANumber(*igra)); ok {
		relevant[*igra] = rec
	}
}

// resolveRegistration is Pass 1, steps 1-4, for a single registration.
func resolveRegistration(reg registration.Registration, db *regdb.Database, now time.Time) pass1 {
	st := pass1{registration: reg}
	c := reg.Contestant

	result := db.FindRegistrant(regdb.RegistrantQuery{
		ClaimedIGRA:     c.Association.IGRA,
		PerformanceName: c.PerformanceName,
		LegalFirst:      c.FirstName,
		LegalLast:       c.LastName,
	})
	resolveIdentity(&st, c, result)

	validateOwnFields(&st, c, db, now)
	validateEvents(&st, reg)
	resolvePartners(&st, reg, db)

	return st
}

// resolveIdentity implements §4.6 step 1: which of PerfectMatch,
// Candidates, or None the registrant resolved to, cross-referenced with
// their declared membership status.
func resolveIdentity(st *pass1, c registration.Contestant, result regdb.FindResult) {
	switch result.Kind {
	case regdb.MatchPerfect:
		id := result.Record.IGRANumber.String()
		st.found = &id

	case regdb.MatchCandidates:
		problem := problemNoPerfectMatch()
		if !c.IsMember {
			problem = problemMaybeAMember()
		}
		for _, cand := range capCandidates(result.Candidates) {
			st.issues = append(st.issues, Issue{
				Problem: problem,
				Fix:     fixUseThisRecord(cand.Record.IGRANumber.String()),
			})
		}

	case regdb.MatchNone:
		if c.IsMember {
			st.issues = append(st.issues, Issue{Problem: problemNoPerfectMatch(), Fix: fixAddNewMember()})
		} else {
			st.issues = append(st.issues, Issue{Problem: problemNotAMember(), Fix: fixNone()})
		}
	}
}

func capCandidates(cs []regdb.Candidate) []regdb.Candidate {
	if len(cs) > MaxUseThisRecordFixes {
		return cs[:MaxUseThisRecordFixes]
	}
	return cs
}

// validateOwnFields implements §4.6 step 2.
func validateOwnFields(st *pass1, c registration.Contestant, db *regdb.Database, now time.Time) {
	for _, field := range missingRequiredFields(c) {
		st.issues = append(st.issues, Issue{Problem: problemNoValue(field), Fix: fixContactRegistrant()})
	}

	if age, ok := c.DOB.AgeAt(now); ok && age < MinimumAge {
		st.issues = append(st.issues, Issue{Problem: problemNotOldEnough(age), Fix: fixContactRegistrant()})
	}

	if st.found == nil {
		return
	}
	rec, ok := db.Lookup(domain.IGRANumber(*st.found))
	if !ok {
		return
	}
	for _, field := range compareFields(c, rec) {
		st.issues = append(st.issues, Issue{Problem: problemDbMismatch(field), Fix: fixUpdateDatabase()})
	}
}

// validateEvents implements §4.6 step 3.
func validateEvents(st *pass1, reg registration.Registration) {
	for _, ev := range reg.Events {
		eid := EventID(ev.EventID)
		if !eid.Known() {
			st.issues = append(st.issues, Issue{
				Problem: problemUnknownEventID(ev.EventID),
				Fix:     fixContactDevelopers(),
			})
			continue
		}
		if ev.Round != 1 && ev.Round != 2 {
			st.issues = append(st.issues, Issue{
				Problem: problemInvalidRoundID(eid, ev.Round),
				Fix:     fixContactDevelopers(),
			})
		}

		required := 0
		if n, ok := eid.RequiredPartnerCount(); ok {
			required = n
		}
		got := countNonEmpty(ev.Partners)
		switch {
		case got < required:
			st.issues = append(st.issues, Issue{Problem: problemTooFewPartners(eid, ev.Round), Fix: fixContactRegistrant()})
		case got > required:
			st.issues = append(st.issues, Issue{Problem: problemTooManyPartners(eid, ev.Round), Fix: fixContactRegistrant()})
		}
	}

	if len(reg.Events) < MinimumGoRounds {
		st.issues = append(st.issues, Issue{
			Problem: problemNotEnoughRounds(len(reg.Events)),
			Fix:     fixContactRegistrant(),
		})
	}
}

func countNonEmpty(partners []string) int {
	n := 0
	for _, p := range partners {
		if trimmedNonEmpty(p) {
			n++
		}
	}
	return n
}

func trimmedNonEmpty(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}

// resolvePartners implements §4.6 step 4: tentatively resolving each
// non-empty partner string, recording confirmed links for the Pass 2
// join and emitting UnknownPartner findings for anything else.
func resolvePartners(st *pass1, reg registration.Registration, db *regdb.Database) {
	for _, ev := range reg.Events {
		eid := EventID(ev.EventID)
		for idx, partner := range ev.Partners {
			if !trimmedNonEmpty(partner) {
				continue
			}
			result := db.FindPartner(partner)
			switch result.Kind {
			case regdb.MatchPerfect:
				st.links = append(st.links, PartnerLink{
					Event:      eid,
					Round:      ev.Round,
					Index:      idx,
					IGRANumber: result.Record.IGRANumber.String(),
				})
			case regdb.MatchCandidates:
				for _, cand := range capCandidates(result.Candidates) {
					st.issues = append(st.issues, Issue{
						Problem: problemUnknownPartner(eid, ev.Round, idx),
						Fix:     fixUseThisRecord(cand.Record.IGRANumber.String()),
					})
				}
			case regdb.MatchNone:
				st.issues = append(st.issues, Issue{
					Problem: problemUnknownPartner(eid, ev.Round, idx),
					Fix:     fixContactRegistrant(),
				})
			}
		}
	}
}

// crossLinkPartners is Pass 2: the serial join over every state's
// confirmed links, checked against the batch-wide igra#->registration
// index built from Pass 1's found results.
func crossLinkPartners(states []pass1, db *regdb.Database) {
	byIGRA := make(map[string]int, len(states))
	for i, st := range states {
		if st.found != nil {
			byIGRA[*st.found] = i
		}
	}

	for i := range states {
		a := &states[i]
		for _, link := range a.links {
			j, ok := byIGRA[link.IGRANumber]
			if !ok {
				a.issues = append(a.issues, Issue{
					Problem: problemUnregisteredPartner(link.Event, link.Round, link.Index, link.IGRANumber),
					Fix:     fixContactRegistrant(),
				})
				continue
			}
			if a.found == nil {
				// A itself isn't a known registrant, so B has no IGRA# of
				// A's to reciprocate with; there is nothing to check.
				continue
			}
			b := &states[j]
			if hasReciprocal(b.links, link.Event, link.Round, *a.found) {
				continue
			}
			a.issues = append(a.issues, Issue{
				Problem: problemMismatchedPartnersFull(link.Event, link.Round, link.Index, link.IGRANumber),
				Fix:     fixContactRegistrant(),
			})
			b.issues = append(b.issues, Issue{
				Problem: problemMismatchedPartnersPartial(*a.found),
				Fix:     fixContactRegistrant(),
			})
		}
	}
}

func resolutionKind(st pass1) string {
	if st.found != nil {
		return "perfect"
	}
	for _, issue := range st.issues {
		switch issue.Problem.Name {
		case ProblemNoPerfectMatch, ProblemMaybeAMember:
			return "candidates"
		}
	}
	return "none"
}

func hasReciprocal(links []PartnerLink, event EventID, round int, igra string) bool {
	for _, l := range links {
		if l.Event == event && l.Round == round && l.IGRANumber == igra {
			return true
		}
	}
	return false
}
