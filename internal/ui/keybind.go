package ui

import (
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// leaderSeq is how the leader key is written in binding sequences.
const leaderSeq = "SPC"

// submenuLabels names leader groups in the hint bar.
var submenuLabels = map[string]string{
	"s": "Scatterplots",
	"f": "Axis field",
}

type binding struct {
	cmd    tea.Cmd
	desc   string
	panels []PanelKind // empty: every panel
}

func (b binding) appliesTo(kind PanelKind) bool {
	return len(b.panels) == 0 || slices.Contains(b.panels, kind)
}

// KeybindRegistry maps key sequences to commands. Sequences are
// space-separated: "q", "ctrl+c", "SPC s a".
type KeybindRegistry struct {
	bindings map[string]binding
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{bindings: make(map[string]binding)}
}

// Bind registers seq without a help description.
func (r *KeybindRegistry) Bind(seq string, cmd tea.Cmd) {
	r.BindWithDescForPanel(seq, cmd, "", nil)
}

// BindWithDesc registers seq for every panel.
func (r *KeybindRegistry) BindWithDesc(seq string, cmd tea.Cmd, desc string) {
	r.BindWithDescForPanel(seq, cmd, desc, nil)
}

// BindWithDescForPanel registers seq for the given panel kinds only. A later
// call for the same sequence replaces the earlier one.
func (r *KeybindRegistry) BindWithDescForPanel(seq string, cmd tea.Cmd, desc string, kinds []PanelKind) {
	r.bindings[normalizeSeq(seq)] = binding{cmd: cmd, desc: desc, panels: kinds}
}

// Lookup returns the command bound to seq, or nil.
func (r *KeybindRegistry) Lookup(seq string) tea.Cmd {
	return r.bindings[normalizeSeq(seq)].cmd
}

// Applies reports whether seq is bound and usable while kind is focused.
func (r *KeybindRegistry) Applies(seq string, kind PanelKind) bool {
	b, ok := r.bindings[normalizeSeq(seq)]
	return ok && b.cmd != nil && b.appliesTo(kind)
}

// HasPrefix reports whether a longer sequence continues seq.
func (r *KeybindRegistry) HasPrefix(seq string) bool {
	prefix := normalizeSeq(seq) + " "
	for s := range r.bindings {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// LeaderHints returns the next key of every binding under currentSeq ("" means
// directly after SPC) that applies to focused, mapped to its description.
// Keys that open a group are labelled with the group name.
func (r *KeybindRegistry) LeaderHints(currentSeq string, focused PanelKind) map[string]string {
	parent := leaderSeq
	if currentSeq != "" {
		parent = normalizeSeq(currentSeq)
	}
	out := make(map[string]string)
	for s, b := range r.bindings {
		rest, ok := strings.CutPrefix(s, parent+" ")
		if !ok || b.cmd == nil || !b.appliesTo(focused) {
			continue
		}
		next, _, group := strings.Cut(rest, " ")
		switch {
		case group:
			if label, ok := submenuLabels[next]; ok {
				out[next] = label
			} else {
				out[next] = next + "…"
			}
		case b.desc != "":
			out[next] = b.desc
		default:
			out[next] = s
		}
	}
	return out
}

// LeaderBindings is LeaderHints as help bindings, sorted by key and ending
// with esc.
func (r *KeybindRegistry) LeaderBindings(currentSeq string, focused PanelKind) []key.Binding {
	hints := r.LeaderHints(currentSeq, focused)
	if len(hints) == 0 {
		return nil
	}
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		out = append(out, key.NewBinding(key.WithKeys(k), key.WithHelp(k, hints[k])))
	}
	return append(out, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
}

func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		parts[i] = keyToSeqPart(p)
	}
	return strings.Join(parts, " ")
}

// keyToSeqPart converts a tea key string to a sequence part.
func keyToSeqPart(s string) string {
	if s == " " || s == "space" {
		return leaderSeq
	}
	return s
}

// KeyHandler tracks leader mode and dispatches keys to the registry.
type KeyHandler struct {
	Registry *KeybindRegistry
	// LeaderKey is the tea.KeyMsg string that starts a sequence. Bubble Tea
	// reports space as " ".
	LeaderKey     string
	LeaderWaiting bool
	Buffer        []string
}

// NewKeyHandler creates a handler with SPC as leader.
func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{Registry: reg, LeaderKey: " "}
}

// Sequence is the pending leader sequence, e.g. "SPC s".
func (h *KeyHandler) Sequence() string {
	return strings.Join(h.Buffer, " ")
}

func (h *KeyHandler) reset() {
	h.LeaderWaiting = false
	h.Buffer = nil
}

// Handle processes msg while a panel of kind focused has focus. consumed is
// false when the key means nothing here. Leader sequences swallow every key
// until they complete, fail or are cancelled with esc.
func (h *KeyHandler) Handle(msg tea.KeyMsg, focused PanelKind) (consumed bool, cmd tea.Cmd) {
	s := msg.String()
	switch {
	case h.LeaderWaiting && s == "esc":
		h.reset()
		return true, nil
	case h.LeaderWaiting:
		h.Buffer = append(h.Buffer, keyToSeqPart(s))
		seq := h.Sequence()
		if h.Registry.Applies(seq, focused) {
			h.reset()
			return true, h.Registry.Lookup(seq)
		}
		if !h.Registry.HasPrefix(seq) {
			h.reset()
		}
		return true, nil
	case s == h.LeaderKey:
		h.LeaderWaiting = true
		h.Buffer = []string{leaderSeq}
		return true, nil
	case h.Registry.Applies(s, focused):
		return true, h.Registry.Lookup(s)
	}
	return false, nil
}
