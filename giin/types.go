package giin

// Row is one non-blank CSV data line bound to its source line number.
type Row struct {
	Line   int
	Fields []string
}

// Table holds a whole CSV file read into memory.
type Table struct {
	HeaderLine int
	Header     []string
	Rows       []Row
}

// Candidate is a normalized data row. PartyKey is empty when the raw party
// name has no entry in the party table.
type Candidate struct {
	Line          int
	ID            string
	Prefecture    string
	District      string
	Party         string
	PartyKey      string
	Reading       string
	Age           string
	Title         string
	Detail        string
	TuboHantei    string
	TuboNaiyou    string
	TuboURL       string
	UraganeHantei string
	UraganeNaiyou string
	UraganeURL    string
}

// NewCandidate normalizes a validated row read against layout.
func NewCandidate(layout Layout, row Row) Candidate {
	c := Candidate{
		Line:          row.Line,
		ID:            layout.Value(row, FieldID),
		Prefecture:    NormalizePrefecture(layout.Value(row, FieldPrefecture)),
		District:      layout.Value(row, FieldDistrict),
		Party:         layout.Value(row, FieldParty),
		Reading:       layout.Value(row, FieldReading),
		Age:           layout.Value(row, FieldAge),
		Title:         layout.Value(row, FieldTitle),
		Detail:        layout.Value(row, FieldDetail),
		TuboHantei:    layout.Value(row, FieldTuboHantei),
		TuboNaiyou:    layout.Value(row, FieldTuboNaiyou),
		TuboURL:       layout.Value(row, FieldTuboURL),
		UraganeHantei: layout.Value(row, FieldUraganeHantei),
		UraganeNaiyou: layout.Value(row, FieldUraganeNaiyou),
		UraganeURL:    layout.Value(row, FieldUraganeURL),
	}
	if key, ok := PartyKey(c.Party); ok {
		c.PartyKey = key
	}
	return c
}

// NewCandidates normalizes every row in file order.
func NewCandidates(layout Layout, rows []Row) []Candidate {
	out := make([]Candidate, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewCandidate(layout, row))
	}
	return out
}
