package monitor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jgoulah/ecomonitor/internal/storage"
)

const menuText = `
Eco-Monitor Menu
1. Generate Data
2. Save Data
3. Load Data
4. Analyze Data
5. Show Insights
6. Exit
`

// Report prints the insight list, or a placeholder if analysis has not produced any
func Report(w io.Writer, insights []string) {
	if len(insights) == 0 {
		fmt.Fprintln(w, "No insights available. Please analyze data first.")
		return
	}

	fmt.Fprintln(w, "\n=== Insights ===")
	for _, insight := range insights {
		fmt.Fprintln(w, insight)
	}
	fmt.Fprintln(w, "\n================")
}

// RunMenu drives the interactive menu until the user exits or input ends
func (m *Monitor) RunMenu(in io.Reader, out io.Writer) error {
	// lines of any length are read whole; an oversized line is an invalid choice
	reader := bufio.NewReader(in)

	for {
		fmt.Fprint(out, menuText)
		fmt.Fprint(out, "Enter your choice: ")

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading input: %w", err)
		}
		if errors.Is(err, io.EOF) && line == "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Exiting the Eco-Monitor. Goodbye!")
			return nil
		}

		if done := m.dispatch(strings.TrimSpace(line), out); done {
			return nil
		}
	}
}

// dispatch runs one menu choice and reports whether the loop should stop
func (m *Monitor) dispatch(choice string, out io.Writer) bool {
	switch choice {
	case "1":
		n := m.Generate()
		fmt.Fprintf(out, "Generated readings for %d appliances.\n", n)
	case "2":
		if err := m.Save(); err != nil {
			fmt.Fprintf(out, "An error occurred while saving data: %v\n", err)
			return false
		}
		fmt.Fprintln(out, "Data saved successfully.")
	case "3":
		err := m.Load()
		switch {
		case errors.Is(err, storage.ErrNotFound):
			fmt.Fprintln(out, "No data file exists. Please generate data first.")
		case err != nil:
			fmt.Fprintf(out, "An error occurred while loading data: %v\n", err)
		default:
			fmt.Fprintln(out, "Data loaded successfully.")
		}
	case "4":
		m.Analyze()
		fmt.Fprintln(out, "Data analysis complete.")
	case "5":
		Report(out, m.insights)
	case "6":
		fmt.Fprintln(out, "Exiting the Eco-Monitor. Goodbye!")
		return true
	default:
		m.logger.Debug("invalid menu choice", "input", choice)
		fmt.Fprintln(out, "Invalid choice. Please select a valid option.")
	}
	return false
}
