package giin

import (
	"bytes"
	"encoding/json"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/pkg/errors"
)

// Fixed keys of the synthetic category and proportional nodes.
const (
	DistrictCategoryKey     = "選挙区"
	ProportionalCategoryKey = "比例区"
	ProportionalGroupKey    = "比例代表"
)

const cardType = "text"

// Default card colors for arrangements the converter does not compute.
const (
	defaultAiueoColor = "#007f7f"
	defaultMapColor   = "#007f7f"
)

// CardColor holds the per-arrangement colors of a candidate card.
type CardColor struct {
	PoliticalParty string `json:"politicalParty"`
	Theme          string `json:"theme"`
	Aiueo          string `json:"aiueo"`
	Map            string `json:"map"`
}

// CardChildren is the empty child list every candidate card carries.
type CardChildren struct {
	Camera *json.RawMessage `json:"camera"`
	Cards  []string         `json:"cards"`
}

// GroupChildren lists the member keys of a group node.
type GroupChildren struct {
	Cards []string `json:"cards"`
}

// CardEntry is the output shape of one candidate.
type CardEntry struct {
	Todoufuken    string       `json:"todoufuken"`
	Senkyoku      string       `json:"senkyoku"`
	Seitou        string       `json:"seitou"`
	SeitouKey     string       `json:"seitouKey,omitempty"`
	Yomi          string       `json:"yomi,omitempty"`
	Age           string       `json:"age"`
	TuboHantei    string       `json:"tubohantei"`
	TuboNaiyou    string       `json:"tubonaiyou"`
	TuboURL       string       `json:"tuboURL"`
	UraganeHantei string       `json:"uraganehantei"`
	UraganeNaiyou string       `json:"uraganenaiyou"`
	UraganeURL    string       `json:"uraganeURL"`
	Title         string       `json:"title"`
	Detail        string       `json:"detail"`
	Type          string       `json:"type"`
	Color         CardColor    `json:"color"`
	ChildrenInfo  CardChildren `json:"childrenInfo"`
	TuboURLArray  string       `json:"tuboURLarray"`
}

// GroupEntry is the output shape of prefecture, party, phonetic,
// proportional and category nodes.
type GroupEntry struct {
	Title        string        `json:"title"`
	Todoufuken   string        `json:"todoufuken,omitempty"`
	Senkyoku     string        `json:"senkyoku,omitempty"`
	Color        string        `json:"color,omitempty"`
	ChildrenInfo GroupChildren `json:"childrenInfo"`
}

// Tree is the output mapping. Keys keep their first insertion position even
// when the value is replaced.
type Tree struct {
	entries *linkedhashmap.Map
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{entries: linkedhashmap.New()}
}

// Put inserts or replaces the entry stored under key.
func (t *Tree) Put(key string, entry any) {
	t.entries.Put(key, entry)
}

// Group returns the group entry stored under key.
func (t *Tree) Group(key string) (GroupEntry, bool) {
	v, ok := t.entries.Get(key)
	if !ok {
		return GroupEntry{}, false
	}
	g, ok := v.(GroupEntry)
	return g, ok
}

// Card returns the candidate entry stored under key.
func (t *Tree) Card(key string) (CardEntry, bool) {
	v, ok := t.entries.Get(key)
	if !ok {
		return CardEntry{}, false
	}
	c, ok := v.(CardEntry)
	return c, ok
}

// Keys returns every key in output order.
func (t *Tree) Keys() []string {
	raw := t.entries.Keys()
	out := make([]string, len(raw))
	for i, k := range raw {
		out[i] = k.(string)
	}
	return out
}

// Len returns the number of top-level entries.
func (t *Tree) Len() int {
	return t.entries.Size()
}

// Dangling lists group members that do not resolve to an entry of the
// expected kind. Category nodes list groups; every other group lists
// candidates.
func (t *Tree) Dangling() []string {
	var missing []string
	it := t.entries.Iterator()
	for it.Next() {
		g, ok := it.Value().(GroupEntry)
		if !ok {
			continue
		}
		key := it.Key().(string)
		category := key == DistrictCategoryKey || key == ProportionalCategoryKey
		for _, member := range g.ChildrenInfo.Cards {
			var found bool
			if category {
				_, found = t.Group(member)
			} else {
				_, found = t.Card(member)
			}
			if !found {
				missing = append(missing, member)
			}
		}
	}
	return missing
}

// MarshalJSON encodes the tree as a single object in insertion order.
// HTML characters are left unescaped.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	buf.WriteByte('{')
	it := t.entries.Iterator()
	first := true
	for it.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := enc.Encode(it.Key()); err != nil {
			return nil, errors.Wrapf(err, "encode key %v", it.Key())
		}
		buf.WriteByte(':')
		if err := enc.Encode(it.Value()); err != nil {
			return nil, errors.Wrapf(err, "encode entry %v", it.Key())
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
