package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/marcuscaisey/finitestack/typedstack"
)

var helpEntries = []struct {
	usage       string
	description string
}{
	{"new <kind> <capacity>", "create an empty stack"},
	{"from <kind> [<value>...] [<capacity>]", "create a stack from a list of values, the last one on top"},
	{"push <value>...", "push values onto the stack"},
	{"pop", "remove and print the top value"},
	{"peek", "print the top value"},
	{"clear", "remove all values"},
	{"size", "print the number of values"},
	{"capacity", "print the maximum number of values"},
	{"kind", "print the buffer kind"},
	{"each", "print the index and value of each element, top first"},
	{"values", "print each value, top first"},
	{"entries", "print each (index, value) pair, top first"},
	{"array", "print the stack as an array, top first"},
	{"help", "print this message"},
}

func printHelp(w io.Writer) {
	usageWidth := 0
	for _, entry := range helpEntries {
		usageWidth = max(usageWidth, runewidth.StringWidth(entry.usage))
	}
	fmt.Fprintln(w, "Commands:")
	for _, entry := range helpEntries {
		fmt.Fprintln(w, " ", runewidth.FillRight(entry.usage, usageWidth), "", entry.description)
	}
	kinds := typedstack.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Kinds:", strings.Join(names, ", "))
}
