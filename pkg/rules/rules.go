// Package rules は絵本生成のための静的ルール表を提供します。
// 画風・ジャンル・年齢帯・禁止表現のタクソノミーはすべてここに集約され、
// 実行時に変更されることはありません。
package rules

// Style は画風1件分の定義です。Key が画像指示の検索キーになります。
type Style struct {
	Label     string   `json:"label"`
	Key       string   `json:"key"`
	Base      string   `json:"base"`
	Technique []string `json:"technique"`
	Quality   []string `json:"quality"`
	Negatives []string `json:"negatives"`
}

// Genre はジャンル1件分の定義です。RhymeDefault は韻のジャンル既定値、
// AgeOverrides は年齢帯ごとの追加制約です。
type Genre struct {
	Label         string              `json:"label"`
	Key           string              `json:"key"`
	RhymeDefault  bool                `json:"rhyme_default"`
	Voice         Voice               `json:"voice"`
	Tone          []string            `json:"tone"`
	BanIntros     bool                `json:"ban_intros"`
	MustInclude   []string            `json:"must_include"`
	ImageSceneKit []string            `json:"image_scene_kit"`
	AgeOverrides  map[string][]string `json:"age_overrides"`
}

// Voice は文体の基準（時制・人称）です。
type Voice struct {
	Tense string `json:"tense"`
	POV   string `json:"pov"`
}

// AgeBand は対象年齢帯と安全則です。
type AgeBand struct {
	Label  string   `json:"label"`
	Safety []string `json:"safety"`
}

// Styles は提供する画風の完全な一覧です。ラベルは UI 表示用、
// キーは内部検索用で、複数ラベルが同じキーを共有することがあります。
var Styles = []Style{
	{
		Label:     "Classic Storybook 📚",
		Key:       "watercolor_storybook",
		Base:      "soft watercolor wash; rounded shapes; gentle paper texture; clean outlines; cozy natural light",
		Technique: []string{"wet-on-wet blends", "granulation speckles", "ink outline (thin)"},
		Quality:   []string{"high-detail brush texture", "no muddy colors"},
		Negatives: []string{"hard speculars", "photoreal shadows", "logo watermarks"},
	},
	{
		Label:     "Comic Book 💥",
		Key:       "comic_color",
		Base:      "color comic page; bold inked lines; ben-day halftone dots; CMYK pop; panel-safe gutters",
		Technique: []string{"dynamic poses", "screen tones", "speed lines (subtle)"},
		Quality:   []string{"pin-sharp inks", "clean flats"},
		Negatives: []string{"gore", "real brand logos", "photo textures"},
	},
	{
		Label:     "Disney Style 🏰",
		Key:       "cinematic_3d_family",
		Base:      "stylized 3D family animation; rounded anatomy; warm cinematic key + soft rim; painterly textures; sun-washed palette",
		Technique: []string{"subsurface skin", "soft DOF", "micro-roughness fabrics"},
		Quality:   []string{"film-like sharpness", "no plastic glare"},
		Negatives: []string{"named franchises", "logos", "weapons"},
	},
	{
		Label:     "Anime Style 🎭",
		Key:       "anime_tv",
		Base:      "clean cel-shaded 2D animation; soft gradient skies; readable silhouettes; subtle bloom",
		Technique: []string{"consistent line weight", "limited palette per scene"},
		Quality:   []string{"high-res raster", "no jittered lines"},
		Negatives: []string{"hyper-real pores", "weapon realism", "brand logos"},
	},
	{
		Label:     "Pixar 3D 🎨",
		Key:       "cinematic_3d_family",
		Base:      "stylized 3D family animation; rounded anatomy; warm cinematic key + soft rim; painterly textures; sun-washed palette",
		Technique: []string{"subsurface skin", "soft DOF", "micro-roughness fabrics"},
		Quality:   []string{"film-like sharpness", "no plastic glare"},
		Negatives: []string{"named franchises", "logos", "weapons"},
	},
	{
		Label:     "Watercolor Art 🎨",
		Key:       "watercolor_storybook",
		Base:      "soft watercolor wash; rounded shapes; gentle paper texture; clean outlines; cozy natural light",
		Technique: []string{"wet-on-wet", "paper grain"},
		Quality:   []string{"high-detail brush texture"},
		Negatives: []string{"muddy colors", "harsh contrast"},
	},
	{
		Label:     "Cartoon Style 🎪",
		Key:       "cartoony_cutout",
		Base:      "flat paper cut-out look; bold outlines; geometric shapes; soft drop shadows",
		Technique: []string{"layered paper edges", "overlap shadows"},
		Quality:   []string{"clean shape edges"},
		Negatives: []string{"photoreal lighting", "tiny noisy patterns"},
	},
	{
		Label:     "Manga Style 📖",
		Key:       "manga_bw",
		Base:      "black-and-white manga; crisp inked lineart; clean screentones; high contrast",
		Technique: []string{"tone dot patterns", "cross-hatching", "panel-safe gutters"},
		Quality:   []string{"pin-sharp lines", "300–600dpi feel"},
		Negatives: []string{"color fills", "gore", "watermarks"},
	},
	{
		Label:     "Fairy Tale 🧚‍♀️",
		Key:       "storybook_ornate",
		Base:      "ornate storybook illustration; delicate ink; soft watercolor fills; gold-accent vibe (no metallic textures)",
		Technique: []string{"decorative borders", "floral motifs"},
		Quality:   []string{"clean, printable detail"},
		Negatives: []string{"real royal crests", "dark horror tone"},
	},
	{
		Label:     "Modern Minimalist ✨",
		Key:       "flat_minimal",
		Base:      "flat vector shapes; large negative space; soft gradients; simple geometry",
		Technique: []string{"2–3 weights of line", "limited palette"},
		Quality:   []string{"crisp edges", "no banding"},
		Negatives: []string{"busy textures", "photo elements"},
	},
	{
		Label:     "Pop Art 🌈",
		Key:       "pop_halftone",
		Base:      "bold high-contrast pop; duotone blocks; halftone dots; thick outline",
		Technique: []string{"offset print vibe", "screen misregistration (subtle)"},
		Quality:   []string{"sharp halftone"},
		Negatives: []string{"brand logos", "gore"},
	},
	{
		Label:     "Vintage Illustration 📰",
		Key:       "vintage_print",
		Base:      "mid-century children's book; limited risograph palette; off-register charm; paper grain",
		Technique: []string{"rough ink", "stamped textures"},
		Quality:   []string{"clean scan feel"},
		Negatives: []string{"modern logos", "photoreal lighting"},
	},
}

// Genres は提供するジャンルの完全な一覧です。
var Genres = []Genre{
	{
		Label:         "Fantasy 🧙‍♀️",
		Key:           "fantasy",
		RhymeDefault:  false,
		Voice:         Voice{Tense: "past", POV: "third"},
		Tone:          []string{"wonder", "hopeful", "gentle magic"},
		BanIntros:     true,
		MustInclude:   []string{"clear beginning-middle-end", "positive resolution"},
		ImageSceneKit: []string{"mythic flora", "soft glows", "floating lights", "simple castles (no trademarks)"},
		AgeOverrides: map[string][]string{
			"pre_k":  {"no peril", "smiling creatures only"},
			"kids":   {"mild suspense allowed"},
			"tweens": {"deeper lore ok"},
		},
	},
	{
		Label:         "Adventure 🗺️",
		Key:           "adventure",
		RhymeDefault:  false,
		Voice:         Voice{Tense: "past", POV: "third"},
		Tone:          []string{"brisk", "brave but kind", "exploration"},
		BanIntros:     true,
		MustInclude:   []string{"teamwork", "map/clue beats"},
		ImageSceneKit: []string{"maps", "landmarks", "trail markers", "friendly outdoor scenes"},
		AgeOverrides: map[string][]string{
			"pre_k":  {"no cliffs", "no chases"},
			"kids":   {"gentle tension"},
			"tweens": {"bigger stakes without harm"},
		},
	},
	{
		Label:         "Space 🚀",
		Key:           "space",
		RhymeDefault:  false,
		Voice:         Voice{Tense: "past", POV: "third"},
		Tone:          []string{"curious", "awe", "science is friendly"},
		BanIntros:     true,
		MustInclude:   []string{"robot pals", "curiosity", "no dystopia"},
		ImageSceneKit: []string{"rounded starships", "pastel nebulae", "friendly robots", "soft space lighting"},
		AgeOverrides: map[string][]string{
			"pre_k":  {"no darkness"},
			"kids":   {"dim scenes allowed with warm lights"},
			"tweens": {"darker skies ok"},
		},
	},
	{
		Label:         "Friendship 🤝",
		Key:           "friendship",
		RhymeDefault:  false,
		Voice:         Voice{Tense: "past", POV: "third"},
		Tone:          []string{"warm", "supportive", "heartwarming"},
		BanIntros:     true,
		MustInclude:   []string{"clear emotions", "simple problem/solution"},
		ImageSceneKit: []string{"parks", "classrooms", "backyards", "cozy indoor spaces"},
		AgeOverrides: map[string][]string{
			"pre_k":  {"ultra simple conflicts"},
			"kids":   {"apologies/resolution"},
			"tweens": {"nuanced feelings ok"},
		},
	},
	{
		Label:         "Animals 🐾",
		Key:           "animals",
		RhymeDefault:  false,
		Voice:         Voice{Tense: "past", POV: "third"},
		Tone:          []string{"cozy", "silly", "heartwarming"},
		BanIntros:     true,
		MustInclude:   []string{"clear emotions", "simple problem/solution"},
		ImageSceneKit: []string{"parks, dens, burrows; oversized leaves", "round features, big eyes"},
		AgeOverrides: map[string][]string{
			"pre_k":  {"no predator scenes"},
			"kids":   {"gentle mischief"},
			"tweens": {"light adventure ok"},
		},
	},
	{
		Label:         "Mystery 🕵️",
		Key:           "mystery",
		RhymeDefault:  false,
		Voice:         Voice{Tense: "past", POV: "third"},
		Tone:          []string{"curious", "reassuring", "light suspense (age-based)"},
		BanIntros:     true,
		MustInclude:   []string{"clues", "red herrings", "friendly reveal"},
		ImageSceneKit: []string{"bulletin boards, yarn lines, magnifiers", "warm indoor lamps", "no police gear"},
		AgeOverrides: map[string][]string{
			"pre_k":  {"no night scenes"},
			"kids":   {"dusk ok, warm lights"},
			"tweens": {"light fog ok"},
		},
	},
	{
		Label:         "Educational 📖",
		Key:           "educational",
		RhymeDefault:  false,
		Voice:         Voice{Tense: "past", POV: "third"},
		Tone:          []string{"clear", "encouraging", "discovery"},
		BanIntros:     true,
		MustInclude:   []string{"learning moments", "curiosity"},
		ImageSceneKit: []string{"diagrams", "labels", "infographics", "classroom scenes"},
		AgeOverrides: map[string][]string{
			"pre_k":  {"picture-forward"},
			"kids":   {"simple facts"},
			"tweens": {"deeper concepts ok"},
		},
	},
	{
		Label:         "Bedtime 🌙",
		Key:           "bedtime",
		RhymeDefault:  true,
		Voice:         Voice{Tense: "past", POV: "third"},
		Tone:          []string{"calming", "lullaby", "low contrast"},
		BanIntros:     true,
		MustInclude:   []string{"slower cadence", "soft endings"},
		ImageSceneKit: []string{"midnight blues, stars, moonbeams", "vignette lighting, no high contrast"},
		AgeOverrides: map[string][]string{
			"pre_k":  {"very low contrast"},
			"kids":   {"whisper-soft"},
			"tweens": {"reflective"},
		},
	},
}

// BanClicheOpeners は絵本の1行目として禁止する常套句の固定リストです。
// 照合は小文字化＋前方一致で行います。
var BanClicheOpeners = []string{
	"once upon a time",
	"in a magical world",
	"long ago",
	"in a land far away",
	"there once was",
	"once there was",
	"in the beginning",
	"a long time ago",
	"many years ago",
	"far far away",
	"in a kingdom",
	"once when",
}

// AgeBands は対象年齢帯の定義です。
var AgeBands = map[string]AgeBand{
	"pre_k": {
		Label:  "Pre-K (3-5 years)",
		Safety: []string{"no peril", "no fear", "always bright, friendly expressions", "no brand/logos"},
	},
	"kids": {
		Label:  "Kids (6-8 years)",
		Safety: []string{"very light suspense OK", "no realistic injuries", "mild spooky limited (soft lighting only)"},
	},
	"tweens": {
		Label:  "Tweens (9-12 years)",
		Safety: []string{"moderate stakes OK (mystery/conflict without harm)", "still no gore/weapons"},
	},
}

// NamePool は主人公名の候補プールです。ブックIDから導出したシードで
// 決定論的に選ばれます。
var NamePool = []string{
	"Noah", "Maya", "Jade", "Omar", "Ava", "Leo", "Rina", "Mateo",
	"Zoe", "Iris", "Arun", "Luca", "Nia", "Kai", "Elio", "Sora",
}

// StyleByKey はキーに一致する画風を返します。見つからない場合は
// 先頭の画風（watercolor_storybook）にフォールバックします。
func StyleByKey(key string) Style {
	for _, s := range Styles {
		if s.Key == key {
			return s
		}
	}
	return Styles[0]
}

// GenreByKey はキーに一致するジャンルを返します。見つからない場合は
// 先頭のジャンル（fantasy）にフォールバックします。
func GenreByKey(key string) Genre {
	for _, g := range Genres {
		if g.Key == key {
			return g
		}
	}
	return Genres[0]
}

// RhymeDefaults はジャンルキー → 韻の既定値のマップを構築します。
// StoryBible の writer_policy にそのまま埋め込まれます。
func RhymeDefaults() map[string]bool {
	defaults := make(map[string]bool, len(Genres))
	for _, g := range Genres {
		if g.RhymeDefault {
			defaults[g.Key] = true
		}
	}
	return defaults
}
