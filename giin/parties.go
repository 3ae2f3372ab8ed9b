package giin

import (
	"sort"
	"strings"
)

// UnknownParty is substituted for an empty party cell before validation.
const UnknownParty = "不明"

// NeutralColor is used for party keys without a registered color.
const NeutralColor = "#D3D3D3"

// partyAliases lists the spelling variants and full legal names that
// resolve to each party key.
var partyAliases = map[string][]string{
	"zimin":     {"自民", "自由民主党"},
	"koumei":    {"公明"},
	"rikken":    {"立憲"},
	"ishin":     {"維新"},
	"kyousan":   {"共産"},
	"kokumin":   {"国民"},
	"reiwa":     {"れいわ"},
	"shamin":    {"社民", "社会民主党"},
	"nkoku":     {"NHK", "N国"},
	"sansei":    {"参政"},
	"nippo":     {"日保", "日本保守党", "日本保守党（代表者：百田尚樹）", "日本保守党（代表者：石濱哲信）"},
	"nissei":    {"日誠", "日本誠真会"},
	"nichiie":   {"日家", "日本の家庭を守る会"},
	"yamato":    {"やまと", "新党やまと"},
	"sabetsu":   {"差別", "差別撲滅党#平和フリーズ"},
	"kakuyu":    {"核融", "核融合党"},
	"genzei":    {"減日", "減税日本"},
	"kunimori":  {"くにもり", "新党くにもり"},
	"tafu":      {"多夫多妻", "多夫多妻党"},
	"kokuga":    {"国ガ", "国政ガバナンスの会"},
	"shinsha":   {"新社", "新社会党"},
	"mintsuku":  {"みんつく", "みんな"},
	"saidou":    {"再道"},
	"mirai":     {"みらい"},
	"nikai":     {"日改"},
	"anshi":     {"安死"},
	"mushozoku": {"無所属"},
	"shoha":     {"諸派"},
	"fumei":     {UnknownParty},
}

// partyKeys maps every accepted raw spelling to its party key.
var partyKeys = indexAliases(partyAliases)

func indexAliases(aliases map[string][]string) map[string]string {
	out := make(map[string]string)
	for key, names := range aliases {
		for _, name := range names {
			out[name] = key
		}
	}
	return out
}

var partyTitles = map[string]string{
	"zimin":     "自由民主党",
	"koumei":    "公明党",
	"rikken":    "立憲民主党",
	"ishin":     "日本維新の会",
	"kyousan":   "日本共産党",
	"kokumin":   "国民民主党",
	"reiwa":     "れいわ新選組",
	"shamin":    "社会民主党",
	"sansei":    "参政党",
	"nippo":     "日保",
	"mintsuku":  "みんつく",
	"nkoku":     "N国",
	"saidou":    "再道",
	"mirai":     "みらい",
	"nikai":     "日改",
	"nissei":    "日本誠真会",
	"nichiie":   "日本の家庭を守る会",
	"yamato":    "新党やまと",
	"sabetsu":   "差別撲滅党#平和フリーズ",
	"kakuyu":    "核融合党",
	"genzei":    "減税日本",
	"kunimori":  "新党くにもり",
	"tafu":      "多夫多妻党",
	"kokuga":    "国政ガバナンスの会",
	"shinsha":   "新社会党",
	"mushozoku": "無所属",
	"shoha":     "諸派",
	"fumei":     "不明",
}

var partyColors = map[string]string{
	"zimin":     "#3CA324",
	"koumei":    "#F55881",
	"rikken":    "#184589",
	"ishin":     "#6FBA2C",
	"kyousan":   "#DB001C",
	"kokumin":   "#F8BC00",
	"reiwa":     "#E4027E",
	"shamin":    "#01A8EC",
	"sansei":    "#D85D0F",
	"nippo":     "#D3D3D3",
	"mintsuku":  "#F8EA0D",
	"mushozoku": "#DFDFDF",
	"shoha":     "#D3D3D3",
	"anshi":     "#D3D3D3",
}

// PartyKey resolves a raw party cell to its canonical key. An empty cell
// resolves like UnknownParty.
func PartyKey(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = UnknownParty
	}
	key, ok := partyKeys[raw]
	return key, ok
}

// PartyTitle returns the display name used for a party group.
func PartyTitle(key string) string {
	if title, ok := partyTitles[key]; ok {
		return title
	}
	return key
}

// PartyColor returns the display color for a party key.
func PartyColor(key string) string {
	if color, ok := partyColors[key]; ok {
		return color
	}
	return NeutralColor
}

// KnownParties lists every raw party spelling accepted by the validator, sorted.
func KnownParties() []string {
	out := make([]string, 0, len(partyKeys))
	for name := range partyKeys {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
