// Package regdb builds and queries the in-memory Database of Personnel
// Records: an exact-lookup map plus BK-tree indexes used for fuzzy name
// matching against registrations and free-text search.
package regdb

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"rodeovalidate/internal/bktree"
	"rodeovalidate/internal/namematch"
	"rodeovalidate/internal/personnel"
	"rodeovalidate/internal/xbase"
	"rodeovalidate/pkg/domain"
	"rodeovalidate/pkg/domainerr"
)

// Tolerances used when probing the BK-tree indexes. These are design
// defaults from the name-matching heuristics; see internal/namematch.
const (
	TolerancePerformance = 3
	ToleranceLegal       = 3
)

// Candidate is one ranked hit from a fuzzy name search.
type Candidate struct {
	Record  personnel.Record
	Score   float64
	Reasons []namematch.Reason
}

// MatchKind classifies a FindResult.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchPerfect
	MatchCandidates
)

// FindResult is the outcome of a registrant or partner search.
type FindResult struct {
	Kind       MatchKind
	Record     personnel.Record // valid when Kind == MatchPerfect
	Candidates []Candidate      // valid when Kind == MatchCandidates, sorted ascending by score
}

// RegistrantQuery carries the fields of a registration relevant to
// resolving it against the Database. It intentionally does not depend on
// internal/registration: callers translate their own request shape into
// this one, keeping the Database ignorant of the registration JSON model.
type RegistrantQuery struct {
	ClaimedIGRA     string
	PerformanceName string
	LegalFirst      string
	LegalLast       string
}

// Database indexes a personnel roster for exact and fuzzy lookup.
type Database struct {
	byID        map[domain.IGRANumber]personnel.Record
	performance *bktree.Tree[domain.IGRANumber]
	legal       *bktree.Tree[domain.IGRANumber]
	firstToken  *bktree.Tree[domain.IGRANumber]
	lastToken   *bktree.Tree[domain.IGRANumber]
}

func levDistance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Load reads and projects tbl's rows, then indexes them into a Database.
func Load(tbl *xbase.Table) (*Database, error) {
	records, err := personnel.ProjectAll(tbl)
	if err != nil {
		return nil, err
	}
	return Build(records), nil
}

// Build indexes an already-projected roster.
func Build(records []personnel.Record) *Database {
	db := &Database{
		byID:        make(map[domain.IGRANumber]personnel.Record, len(records)),
		performance: bktree.New[domain.IGRANumber](levDistance),
		legal:       bktree.New[domain.IGRANumber](levDistance),
		firstToken:  bktree.New[domain.IGRANumber](levDistance),
		lastToken:   bktree.New[domain.IGRANumber](levDistance),
	}

	for _, r := range records {
		db.byID[r.IGRANumber] = r
		db.performance.Insert(namematch.Normalize(r.PerformanceName()), r.IGRANumber)
		db.legal.Insert(namematch.Normalize(r.LegalName()), r.IGRANumber)
		db.firstToken.Insert(namematch.Normalize(r.LegalFirst), r.IGRANumber)
		db.lastToken.Insert(namematch.Normalize(r.LegalLast), r.IGRANumber)
	}
	return db
}

// Lookup returns the record with the given IGRA#, if any.
func (db *Database) Lookup(id domain.IGRANumber) (personnel.Record, bool) {
	r, ok := db.byID[id]
	return r, ok
}

// LookupOrError is Lookup, returning a domainerr.CodeNotFound error instead
// of a boolean for callers that treat a missing exact ID as a failure.
func (db *Database) LookupOrError(id domain.IGRANumber) (personnel.Record, error) {
	r, ok := db.byID[id]
	if !ok {
		return personnel.Record{}, domainerr.Newf(domainerr.CodeNotFound, "no record for igra# %s", id)
	}
	return r, nil
}

// SearchPerformance ranks every record against a free-text query, for the
// /search endpoint. Always succeeds, possibly with an empty result.
func (db *Database) SearchPerformance(query string) []Candidate {
	return db.candidatesForQuery(query)
}

// FindRegistrant resolves a registration against the Database: exact
// IGRA# first (if claimed and the name still roughly matches), then the
// Name Matcher against performance name, then legal name.
func (db *Database) FindRegistrant(q RegistrantQuery) FindResult {
	if q.ClaimedIGRA != "" {
		if rec, ok := db.byID[domain.IGRANumber(q.ClaimedIGRA)]; ok && db.nameMatchesRecord(q, rec) {
			return FindResult{Kind: MatchPerfect, Record: rec}
		}
	}

	if strings.TrimSpace(q.PerformanceName) != "" {
		if res := db.searchNamed(q.PerformanceName, q.ClaimedIGRA); res.Kind != MatchNone {
			return res
		}
	}

	legalName := strings.TrimSpace(strings.TrimSpace(q.LegalFirst) + " " + strings.TrimSpace(q.LegalLast))
	if legalName != "" {
		if res := db.searchNamed(legalName, q.ClaimedIGRA); res.Kind != MatchNone {
			return res
		}
	}

	// A full legal-name search can miss a typo confined to just one token;
	// fall back to intersecting the separate first/last token trees.
	if split := db.candidatesFromSplitName(q.LegalFirst, q.LegalLast); len(split) > 0 {
		sortCandidates(split)
		return FindResult{Kind: MatchCandidates, Candidates: split}
	}

	return FindResult{Kind: MatchNone}
}

// candidatesFromSplitName implements the "split legal name" query shape:
// look up first and last name independently in their token trees, then
// keep only records present in both hit sets, with combined distance.
func (db *Database) candidatesFromSplitName(first, last string) []Candidate {
	nf := namematch.Normalize(first)
	nl := namematch.Normalize(last)
	if nf == "" || nl == "" {
		return nil
	}

	firstDist := make(map[domain.IGRANumber]int)
	for _, m := range db.firstToken.Find(nf, ToleranceLegal) {
		for _, id := range m.Payloads {
			firstDist[id] = m.Distance
		}
	}

	var candidates []Candidate
	for _, m := range db.lastToken.Find(nl, ToleranceLegal) {
		for _, id := range m.Payloads {
			fd, ok := firstDist[id]
			if !ok {
				continue
			}
			rec, ok := db.byID[id]
			if !ok {
				continue
			}
			combined := float64(fd + m.Distance)
			if combined > namematch.DefaultMaxScore {
				continue
			}
			candidates = append(candidates, Candidate{
				Record:  rec,
				Score:   combined,
				Reasons: []namematch.Reason{namematch.ReasonEditDistance},
			})
		}
	}
	return candidates
}

// FindPartner resolves a partner field ("NAME | IGRA#" or free text)
// using the Name Matcher's single-string query shape.
func (db *Database) FindPartner(partnerString string) FindResult {
	return db.searchNamed(partnerString, "")
}

func (db *Database) nameMatchesRecord(q RegistrantQuery, rec personnel.Record) bool {
	perf := namematch.Normalize(q.PerformanceName)
	legal := namematch.Normalize(strings.TrimSpace(q.LegalFirst) + " " + strings.TrimSpace(q.LegalLast))
	recPerf := namematch.Normalize(rec.PerformanceName())
	recLegal := namematch.Normalize(rec.LegalName())

	if perf != "" {
		if perf == recPerf || levDistance(perf, recPerf) <= TolerancePerformance {
			return true
		}
	}
	if legal != "" {
		if legal == recLegal || levDistance(legal, recLegal) <= ToleranceLegal {
			return true
		}
	}
	return false
}

func (db *Database) searchNamed(raw, explicitID string) FindResult {
	candidates := db.candidatesForQueryWithID(raw, explicitID)
	if len(candidates) == 0 {
		return FindResult{Kind: MatchNone}
	}

	best := candidates[0]
	query := namematch.Normalize(raw)
	if namematch.IsPerfectMatch(best.Score, query, namematch.Normalize(best.Record.PerformanceName()), string(best.Record.IGRANumber)) ||
		namematch.IsPerfectMatch(best.Score, query, namematch.Normalize(best.Record.LegalName()), string(best.Record.IGRANumber)) {
		return FindResult{Kind: MatchPerfect, Record: best.Record}
	}
	return FindResult{Kind: MatchCandidates, Candidates: candidates}
}

func (db *Database) candidatesForQuery(raw string) []Candidate {
	return db.candidatesForQueryWithID(raw, "")
}

func (db *Database) candidatesForQueryWithID(raw, explicitID string) []Candidate {
	splitID, splitName := namematch.SplitPartner(raw)
	queryName := raw
	if splitName != "" {
		queryName = splitName
	}
	if explicitID == "" {
		explicitID = splitID
	}
	normalized := namematch.Normalize(queryName)
	if normalized == "" && explicitID == "" {
		return nil
	}

	seen := make(map[domain.IGRANumber]bool)
	var hits []personnel.Record

	collect := func(tree *bktree.Tree[domain.IGRANumber], tolerance int) {
		for _, m := range tree.Find(normalized, tolerance) {
			for _, id := range m.Payloads {
				if seen[id] {
					continue
				}
				seen[id] = true
				if rec, ok := db.byID[id]; ok {
					hits = append(hits, rec)
				}
			}
		}
	}
	collect(db.performance, TolerancePerformance)
	collect(db.legal, ToleranceLegal)

	if explicitID != "" && !seen[domain.IGRANumber(explicitID)] {
		if rec, ok := db.byID[domain.IGRANumber(explicitID)]; ok {
			seen[rec.IGRANumber] = true
			hits = append(hits, rec)
		}
	}

	candidates := make([]Candidate, 0, len(hits))
	for _, rec := range hits {
		score, reasons := bestNameScore(normalized, rec)
		if explicitID != "" && explicitID == string(rec.IGRANumber) {
			score -= 5
			reasons = append(reasons, namematch.ReasonIDMatch)
		}
		if score > namematch.DefaultMaxScore {
			continue
		}
		candidates = append(candidates, Candidate{Record: rec, Score: score, Reasons: reasons})
	}

	sortCandidates(candidates)
	return candidates
}

func sortCandidates(candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score < candidates[j].Score
		}
		return candidates[i].Record.IGRANumber < candidates[j].Record.IGRANumber
	})
}

func bestNameScore(query string, rec personnel.Record) (float64, []namematch.Reason) {
	perfScore, perfReasons := namematch.Score(query, namematch.Normalize(rec.PerformanceName()), string(rec.IGRANumber))
	legalScore, legalReasons := namematch.Score(query, namematch.Normalize(rec.LegalName()), string(rec.IGRANumber))
	if perfScore <= legalScore {
		return perfScore, perfReasons
	}
	return legalScore, legalReasons
}
