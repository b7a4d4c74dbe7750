package main

import (
	"fmt"
	"io"
	"os"

	"github.com/beka-birhanu/shifting-maze/maze"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var reproduce bool

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check every maze of a YAML snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return runValidate(cmd.OutOrStdout(), f, reproduce)
		},
	}

	cmd.Flags().BoolVar(&reproduce, "reproduce", false, "Also regenerate each maze from its seed and compare")
	return cmd
}

func runValidate(w io.Writer, r io.Reader, reproduce bool) error {
	snapshots, err := maze.LoadSnapshots(r)
	if err != nil {
		return fmt.Errorf("reading snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		return fmt.Errorf("no snapshots found")
	}

	for n, s := range snapshots {
		if err := validateSnapshot(s, reproduce); err != nil {
			return fmt.Errorf("snapshot %d (seed %d): %w", n, s.Seed, err)
		}
	}
	fmt.Fprintf(w, "%d maze(s) valid\n", len(snapshots))
	return nil
}

func validateSnapshot(s *maze.Snapshot, reproduce bool) error {
	m, err := s.Maze()
	if err != nil {
		return err
	}
	if m.Size() != s.GridSize {
		return fmt.Errorf("maze has %d rows, snapshot declares size %d", m.Size(), s.GridSize)
	}
	if !reproduce {
		return nil
	}

	generator, err := maze.New(s.Config(), maze.WithSeed(s.Seed))
	if err != nil {
		return err
	}
	regenerated := generator.Generate().Rows()
	for y, row := range m.Rows() {
		if regenerated[y] != row {
			return fmt.Errorf("row %d differs from the maze regenerated from the seed", y)
		}
	}
	return nil
}
