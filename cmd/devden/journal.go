package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/devden/internal/platform/tui"
	"github.com/vovakirdan/devden/internal/storage"
)

var (
	flagJournalPlain bool
	flagJournalLimit int
	flagJournalClear bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Browse past play sessions",
	Long: `Show the session journal: who played, for how long, how far they
walked and how many conversations they started.

Examples:
  devden journal                 # Interactive viewer
  devden journal --plain         # Print the latest sessions
  devden journal --plain -n 50
  devden journal --clear`,
	Args: cobra.NoArgs,
	RunE: runJournal,
}

func init() {
	journalCmd.Flags().BoolVar(&flagJournalPlain, "plain", false, "Print sessions instead of opening the viewer")
	journalCmd.Flags().IntVarP(&flagJournalLimit, "limit", "n", 20, "Sessions to print with --plain")
	journalCmd.Flags().BoolVar(&flagJournalClear, "clear", false, "Delete every journaled session")
}

func runJournal(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	if flagJournalClear {
		if err := store.ClearSessions(); err != nil {
			return err
		}
		fmt.Println("Journal cleared.")
		return nil
	}

	if !flagJournalPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunJournal(store, width, height)
	}

	sessions, err := store.RecentSessions(flagJournalLimit)
	if err != nil {
		return err
	}
	totals, err := store.Totals()
	if err != nil {
		return err
	}

	fmt.Printf("Session journal - %d sessions, %.0f px walked, %d conversations\n\n",
		totals.Sessions, totals.Distance, totals.Conversations)
	if len(sessions) == 0 {
		fmt.Println("No sessions journaled yet.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tPLAYER\tVIA\tTIME\tWALKED\tTALKS")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.0f\t%d\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Player,
			s.Frontend,
			time.Duration(s.Duration)*time.Second,
			s.Distance,
			s.Conversations,
		)
	}
	return tw.Flush()
}
