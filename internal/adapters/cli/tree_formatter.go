package cli

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/craftreq/internal/domain/crafting"
)

// treeNode is one rendered line with its children
type treeNode struct {
	label    string
	children []*treeNode
}

// TreeFormatter renders a requirement set and its evaluation as a tree of
// categories, groups and alternatives
type TreeFormatter struct {
	useColors bool
	names     crafting.ItemCatalog
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(names crafting.ItemCatalog, useColors bool) *TreeFormatter {
	return &TreeFormatter{useColors: useColors, names: names}
}

// FormatEvaluation renders every group of the set with the tier of each alternative
func (f *TreeFormatter) FormatEvaluation(title string, set *crafting.RequirementSet, eval *crafting.Evaluation) string {
	verdict := "can craft"
	if !eval.CanCraft() {
		verdict = "cannot craft"
	}
	root := &treeNode{label: fmt.Sprintf("%s [%s, batch %d]", title, verdict, eval.Batch())}

	if tools := set.Tools(); len(tools) > 0 {
		root.children = append(root.children, categoryNode(f, crafting.CategoryTools, tools, eval))
	}
	if qualities := set.Qualities(); len(qualities) > 0 {
		root.children = append(root.children, categoryNode(f, crafting.CategoryQualities, qualities, eval))
	}
	if components := set.Components(); len(components) > 0 {
		root.children = append(root.children, categoryNode(f, crafting.CategoryComponents, components, eval))
	}
	if skills := set.Skills(); len(skills) > 0 {
		node := &treeNode{label: string(crafting.CategorySkills)}
		for _, s := range skills {
			node.children = append(node.children, &treeNode{label: s.Describe()})
		}
		root.children = append(root.children, node)
	}

	var builder strings.Builder
	f.formatNode(&builder, root, "", true, true)
	return builder.String()
}

// FormatSkills renders the per-skill assessment with its display tier
func (f *TreeFormatter) FormatSkills(title string, skills []crafting.SkillAssessment) string {
	root := &treeNode{label: title}
	for _, s := range skills {
		root.children = append(root.children, &treeNode{label: fmt.Sprintf("%s%s %s%s (level %d, min %d, rate %.1f%%)",
			f.tierColor(string(s.Tier)), skillIcon(s.Tier), s.Requirement.Describe(), f.colorReset(),
			s.Level, s.Requirement.Minimum, s.Rate*100)})
	}
	var builder strings.Builder
	f.formatNode(&builder, root, "", true, true)
	return builder.String()
}

func categoryNode[G ~[]T, T crafting.Requirement](f *TreeFormatter, category crafting.Category, groups []G, eval *crafting.Evaluation) *treeNode {
	node := &treeNode{label: string(category)}
	for g, group := range groups {
		groupNode := &treeNode{label: fmt.Sprintf("group %d", g+1)}
		for a, req := range group {
			tier := crafting.AlternativeTierOf(eval, category, g, a)
			groupNode.children = append(groupNode.children, &treeNode{
				label: fmt.Sprintf("%s%s %s%s", f.tierColor(string(tier)), alternativeIcon(tier), req.Describe(f.names, eval.Batch()), f.colorReset()),
			})
		}
		node.children = append(node.children, groupNode)
	}
	return node
}

// formatNode recursively formats a node and its children
func (f *TreeFormatter) formatNode(builder *strings.Builder, node *treeNode, prefix string, isLast bool, isRoot bool) {
	var linePrefix string
	if isRoot {
		linePrefix = ""
	} else if isLast {
		linePrefix = prefix + "└── "
	} else {
		linePrefix = prefix + "├── "
	}

	builder.WriteString(linePrefix + node.label + "\n")

	var childPrefix string
	if isRoot {
		childPrefix = ""
	} else if isLast {
		childPrefix = prefix + "    "
	} else {
		childPrefix = prefix + "│   "
	}

	for i, child := range node.children {
		f.formatNode(builder, child, childPrefix, i == len(node.children)-1, false)
	}
}

func alternativeIcon(tier crafting.AlternativeTier) string {
	switch tier {
	case crafting.AlternativeAvailable:
		return "[✓]"
	case crafting.AlternativeContended:
		return "[!]"
	case crafting.AlternativeCovered:
		return "[-]"
	default:
		return "[✗]"
	}
}

func skillIcon(tier crafting.DisplayTier) string {
	switch tier {
	case crafting.TierFull:
		return "[✓]"
	case crafting.TierDegraded:
		return "[~]"
	default:
		return "[✗]"
	}
}

// tierColor returns the ANSI color for an alternative or skill tier
func (f *TreeFormatter) tierColor(tier string) string {
	if !f.useColors {
		return ""
	}

	switch tier {
	case string(crafting.AlternativeAvailable), string(crafting.TierFull):
		return "\033[32m" // Green
	case string(crafting.AlternativeContended), string(crafting.TierDegraded):
		return "\033[33m" // Yellow
	case string(crafting.AlternativeCovered):
		return "\033[90m" // Grey
	default:
		return "\033[31m" // Red
	}
}

// colorReset returns ANSI reset code
func (f *TreeFormatter) colorReset() string {
	if !f.useColors {
		return ""
	}
	return "\033[0m"
}
