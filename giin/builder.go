package giin

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Diagnostic is a non-fatal note about how a candidate was grouped.
type Diagnostic struct {
	Line    int
	ID      string
	Message string
}

// Builder aggregates normalized candidates into a Tree.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder returns a builder logging soft drops to logger. A nil logger is allowed.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger}
}

// orderedBuckets keeps member lists per key together with first-seen key order.
type orderedBuckets struct {
	order   []string
	members map[string][]string
}

func newOrderedBuckets() *orderedBuckets {
	return &orderedBuckets{members: make(map[string][]string)}
}

func (b *orderedBuckets) add(key, id string) {
	if _, ok := b.members[key]; !ok {
		b.order = append(b.order, key)
	}
	b.members[key] = append(b.members[key], id)
}

// Build produces the output tree from candidates in file order.
func (b *Builder) Build(candidates []Candidate) (*Tree, []Diagnostic) {
	tree := NewTree()
	tree.Put(DistrictCategoryKey, GroupEntry{Title: DistrictCategoryKey, ChildrenInfo: GroupChildren{Cards: []string{}}})
	proportionalCategory := GroupEntry{
		Title:        ProportionalGroupKey,
		ChildrenInfo: GroupChildren{Cards: []string{ProportionalGroupKey}},
	}
	tree.Put(ProportionalCategoryKey, proportionalCategory)

	var diags []Diagnostic
	prefectures := newOrderedBuckets()
	parties := newOrderedBuckets()
	phonetic := newOrderedBuckets()
	proportional := []string{}
	firstLine := make(map[string]int, len(candidates))

	for _, c := range candidates {
		if IsProportional(c.District) {
			proportional = append(proportional, c.ID)
		} else {
			prefectures.add(c.Prefecture, c.ID)
		}

		if c.PartyKey != "" {
			parties.add(c.PartyKey, c.ID)
		} else {
			diags = append(diags, b.soft(c, fmt.Sprintf("party '%s' has no group key; left out of party grouping", c.Party)))
		}

		if c.Reading != "" {
			if row, ok := PhoneticRow(c.Reading); ok {
				phonetic.add(row.Label, c.ID)
			} else {
				diags = append(diags, b.soft(c, fmt.Sprintf("reading '%s' matches no kana row; left out of phonetic grouping", c.Reading)))
			}
		}

		if first, dup := firstLine[c.ID]; dup {
			diags = append(diags, b.soft(c, fmt.Sprintf("duplicate id overwrites the entry from line %d", first)))
		} else {
			firstLine[c.ID] = c.Line
		}
		tree.Put(c.ID, newCardEntry(c))
	}

	putGroup := func(key string, group GroupEntry) {
		if _, isCard := tree.Card(key); isCard {
			diags = append(diags, b.soft(Candidate{Line: firstLine[key], ID: key},
				fmt.Sprintf("group '%s' replaces the candidate entry with the same id", key)))
		}
		tree.Put(key, group)
	}

	prefKeys := make([]string, len(prefectures.order))
	copy(prefKeys, prefectures.order)
	sort.Strings(prefKeys)
	putGroup(DistrictCategoryKey, GroupEntry{Title: DistrictCategoryKey, ChildrenInfo: GroupChildren{Cards: prefKeys}})
	putGroup(ProportionalCategoryKey, proportionalCategory)
	for _, pref := range prefKeys {
		putGroup(pref, GroupEntry{
			Title:        pref,
			Todoufuken:   pref,
			Senkyoku:     pref,
			ChildrenInfo: GroupChildren{Cards: prefectures.members[pref]},
		})
	}

	putGroup(ProportionalGroupKey, GroupEntry{
		Title:        ProportionalGroupKey,
		Senkyoku:     ProportionalDistrict,
		ChildrenInfo: GroupChildren{Cards: proportional},
	})

	for _, key := range parties.order {
		putGroup(key, GroupEntry{
			Title:        PartyTitle(key),
			Color:        PartyColor(key),
			ChildrenInfo: GroupChildren{Cards: parties.members[key]},
		})
	}

	for _, label := range phonetic.order {
		putGroup(label, GroupEntry{
			Title:        label,
			ChildrenInfo: GroupChildren{Cards: phonetic.members[label]},
		})
	}

	b.logger.Debug("tree built",
		zap.Int("candidates", len(candidates)),
		zap.Int("prefectures", len(prefKeys)),
		zap.Int("parties", len(parties.order)),
		zap.Int("phonetic", len(phonetic.order)),
		zap.Int("proportional", len(proportional)),
	)
	return tree, diags
}

func (b *Builder) soft(c Candidate, msg string) Diagnostic {
	b.logger.Warn(msg, zap.Int("line", c.Line), zap.String("id", c.ID))
	return Diagnostic{Line: c.Line, ID: c.ID, Message: msg}
}

func newCardEntry(c Candidate) CardEntry {
	partyColor := NeutralColor
	if c.PartyKey != "" {
		partyColor = PartyColor(c.PartyKey)
	}
	return CardEntry{
		Todoufuken:    c.Prefecture,
		Senkyoku:      c.District,
		Seitou:        c.Party,
		SeitouKey:     c.PartyKey,
		Yomi:          c.Reading,
		Age:           c.Age,
		TuboHantei:    c.TuboHantei,
		TuboNaiyou:    c.TuboNaiyou,
		TuboURL:       c.TuboURL,
		UraganeHantei: c.UraganeHantei,
		UraganeNaiyou: c.UraganeNaiyou,
		UraganeURL:    c.UraganeURL,
		Title:         c.Title,
		Detail:        c.Detail,
		Type:          cardType,
		Color: CardColor{
			PoliticalParty: partyColor,
			Theme:          IssueColor(c.TuboHantei, c.UraganeHantei),
			Aiueo:          defaultAiueoColor,
			Map:            defaultMapColor,
		},
		ChildrenInfo: CardChildren{Cards: []string{}},
		TuboURLArray: "",
	}
}

// BuildTree is a shorthand for NewBuilder(nil).Build.
func BuildTree(candidates []Candidate) *Tree {
	tree, _ := NewBuilder(nil).Build(candidates)
	return tree
}
