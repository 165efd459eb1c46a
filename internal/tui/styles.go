package tui

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the header logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "BLOG PESSOAL" as a wave of blue light moving
// left to right, deep navy (#1e3a8a) to sky (#93c5fd).
func renderShimmerLogo(frame int) string {
	const text = "BLOG PESSOAL"
	n := len(text)

	var out strings.Builder
	t := float64(frame)

	for i := 0; i < n; i++ {
		if text[i] == ' ' {
			out.WriteString("   ")
			continue
		}
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)
		b = b*0.75 + math.Sin(t*0.035)*0.12 + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		// Deep:   (30, 58, 138)  #1e3a8a
		// Bright: (147, 197, 253) #93c5fd
		r := clampByte(30 + b*(147-30))
		g := clampByte(58 + b*(197-58))
		bl := clampByte(138 + b*(253-138))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out.WriteString(s.Render(string(text[i])))

		if i < n-1 && text[i+1] != ' ' {
			out.WriteString(" ")
		}
	}

	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	bannerTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffffff")).
				Bold(true)

	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#93c5fd")).
			Bold(true)

	postTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0")).
			Bold(true)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#60a5fa")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#505868")).
				Italic(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#1d4ed8")).
			Padding(0, 2)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#dc2626")).
			Bold(true)
)

// themePalette colors theme labels; a description always maps to the same color.
var themePalette = []lipgloss.Color{
	"#60a5fa", // blue
	"#34d474", // green
	"#f59e0b", // amber
	"#c084e0", // violet
	"#3ecce4", // cyan
	"#f87171", // red
	"#facc15", // yellow
}

// ThemeStyle returns a bold style colored for the given theme description.
func ThemeStyle(desc string) lipgloss.Style {
	if desc == "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
	}
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(desc))) //nolint:errcheck // hash writes never fail
	return lipgloss.NewStyle().Foreground(themePalette[h.Sum32()%uint32(len(themePalette))]).Bold(true)
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpView renders the key reference overlay.
func helpView() string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60a5fa")).
		Bold(true).
		Render("B L O G   P E S S O A L")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)

	sections := []struct {
		name string
		keys []struct{ key, desc string }
	}{
		{"Navegação", []struct{ key, desc string }{
			{"0", "Home"},
			{"1", "Postagens"},
			{"2", "Temas"},
			{"3", "Cadastrar tema"},
			{"4", "Perfil"},
			{"x", "Sair"},
		}},
		{"Postagens", []struct{ key, desc string }{
			{"n", "Nova postagem"},
			{"e", "Editar postagem"},
			{"d", "Deletar postagem"},
			{"c", "Copiar texto"},
			{"r", "Recarregar"},
		}},
		{"Comandos", []struct{ key, desc string }{
			{"blogpessoal", "Abrir o blog (TUI)"},
			{"blogpessoal version", "Mostrar a versão"},
			{"blogmock", "Backend de teste em memória"},
		}},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n", title)
	for _, s := range sections {
		fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render(s.name))
		for _, k := range s.keys {
			fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", k.key)), descStyle.Render(k.desc))
		}
	}
	return b.String()
}
