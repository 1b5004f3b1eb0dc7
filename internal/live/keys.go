package live

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/roach88/tickinput/internal/binding"
)

// keyNames maps binding key names to terminal keys.
var keyNames = map[string]tcell.Key{
	"Enter":     tcell.KeyEnter,
	"Esc":       tcell.KeyEscape,
	"Tab":       tcell.KeyTab,
	"Backtab":   tcell.KeyBacktab,
	"Backspace": tcell.KeyBackspace2,
	"Up":        tcell.KeyUp,
	"Down":      tcell.KeyDown,
	"Left":      tcell.KeyLeft,
	"Right":     tcell.KeyRight,
	"Home":      tcell.KeyHome,
	"End":       tcell.KeyEnd,
	"PgUp":      tcell.KeyPgUp,
	"PgDn":      tcell.KeyPgDn,
	"Insert":    tcell.KeyInsert,
	"Delete":    tcell.KeyDelete,
	"F1":        tcell.KeyF1,
	"F2":        tcell.KeyF2,
	"F3":        tcell.KeyF3,
	"F4":        tcell.KeyF4,
	"F5":        tcell.KeyF5,
	"F6":        tcell.KeyF6,
	"F7":        tcell.KeyF7,
	"F8":        tcell.KeyF8,
	"F9":        tcell.KeyF9,
	"F10":       tcell.KeyF10,
	"F11":       tcell.KeyF11,
	"F12":       tcell.KeyF12,
}

// KeyNames returns every key name a terminal binding may use, sorted.
func KeyNames() []string {
	names := make([]string, 0, len(keyNames))
	for name := range keyNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckTerminalBindings reports the first trigger a terminal cannot deliver.
func CheckTerminalBindings(b *binding.Bindings) error {
	check := func(table, name string, t binding.Trigger) error {
		if t.Key == "" {
			return nil
		}
		if _, ok := keyNames[t.Key]; !ok {
			return fmt.Errorf("%s.%s: terminal has no key named %q", table, name, t.Key)
		}
		return nil
	}
	for _, name := range b.ActionNames() {
		if err := check("actions", name, b.Actions[name]); err != nil {
			return err
		}
	}
	for _, name := range b.AnalogNames() {
		if err := check("analogs", name, b.Analogs[name]); err != nil {
			return err
		}
	}
	return nil
}

func mouseButton(name string) tcell.ButtonMask {
	switch name {
	case binding.MouseLeft:
		return tcell.Button1
	case binding.MouseRight:
		return tcell.Button2
	case binding.MouseMiddle:
		return tcell.Button3
	default:
		return tcell.ButtonNone
	}
}
