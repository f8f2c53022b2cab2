package backtest

import "fmt"

func (s *Summary) Print() {
	fmt.Println("\n=== Scan Results ===")
	fmt.Printf("Views Simulated:  %d\n", len(s.Results))
	fmt.Printf("Wins:             %d\n", s.Wins)
	fmt.Printf("Losses:           %d\n", s.Losses)
	fmt.Printf("Skipped:          %d\n\n", s.Skipped)

	fmt.Printf("Decisive Trades:  %d\n", s.Decisive)
	fmt.Printf("Win Rate:         %.2f%%\n", s.WinRate)
	fmt.Printf("Avg P&L:          %.4f per decisive trade\n", s.AvgPnL)
}

// PrintResults lists individual outcomes in scan order, so the numbering
// lines up with the generated view list.
func (s *Summary) PrintResults() {
	fmt.Println("\n=== Trade List ===")
	for i, r := range s.Results {
		switch r.Outcome {
		case Skip:
			fmt.Printf("#%d | %s | SKIP (%s)\n", i+1, r.ViewKey, r.SkipReason)
		default:
			fmt.Printf("#%d | %s | %s | Entry: %.2f | Target: %.2f | Stop: %.2f | P&L: %.4f\n",
				i+1, r.ViewKey, r.Outcome, r.Entry, r.Target, r.Stop, r.PnL)
		}
	}
}
