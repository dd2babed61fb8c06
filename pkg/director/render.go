package director

import (
	"fmt"
	"strings"
)

// RenderedShot はショットプランを自然言語に描画した結果です。
// PlanLine は画像プロンプトに、Negatives はネガティブプロンプトに
// それぞれ合流します。
type RenderedShot struct {
	PlanLine  string
	Negatives []string
}

// Render は被写体タグを主人公・サポートの実名に展開し、
// FRAMING/ANGLE/COMPOSITION ヘッダ行と包含・除外の指示を組み立てます。
func Render(shot ShotPlan, leadName string, supportNames []string) RenderedShot {
	var include []string
	var exclude []string

	for _, tag := range shot.Include {
		switch tag {
		case "lead":
			if leadName != "" {
				include = append(include, fmt.Sprintf("show %s", leadName))
			}
		case "support":
			if len(supportNames) > 0 {
				include = append(include, fmt.Sprintf("feature %s", supportNames[0]))
			}
		case "group":
			include = append(include, "group of neighbors, balanced spacing")
		case "environment":
			include = append(include, "environmental storytelling; people as small figures")
		case "object":
			include = append(include, "hero object large in frame, tactile detail")
		}
	}

	for _, tag := range shot.Exclude {
		switch tag {
		case "lead?":
			if leadName != "" {
				exclude = append(exclude, fmt.Sprintf("no portrait of %s", leadName))
			}
		case "portraits":
			exclude = append(exclude, "no portrait framing")
		}
	}

	camera := fmt.Sprintf("FRAMING: %s; ANGLE: %s; COMPOSITION: %s", shot.Frame, shot.Angle, shot.Comp)
	return RenderedShot{
		PlanLine:  camera + " | " + strings.Join(include, "; "),
		Negatives: exclude,
	}
}
