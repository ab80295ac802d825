package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/elfkit/dump"
	"github.com/wippyai/elfkit/elf"
)

type app struct {
	log     *zap.Logger
	verbose bool
}

func newRootCommand() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:               "elfinfo [command] <file>",
		Short:             "Inspect the headers and sections of an ELF file",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setupLogger,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log decoding steps to stderr")
	root.AddCommand(
		a.newHeaderCommand(),
		a.newProgramsCommand(),
		a.newSectionsCommand(),
		a.newAllCommand(),
		a.newDumpCommand(),
		a.newBrowseCommand(),
	)
	return root
}

func (a *app) setupLogger(*cobra.Command, []string) error {
	if !a.verbose {
		return nil
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.log = log
	elf.SetLogger(log)
	return nil
}

// withFile opens the file named by the single argument and runs fn on it.
func withFile(fn func(out io.Writer, f *elf.File) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		f, err := elf.Open(args[0])
		if err != nil {
			return err
		}
		return fn(cmd.OutOrStdout(), f)
	}
}

func (a *app) newHeaderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "header <file>",
		Short: "Print the file header",
		Args:  cobra.ExactArgs(1),
		RunE: withFile(func(out io.Writer, f *elf.File) error {
			printHeader(out, &f.Header)
			return nil
		}),
	}
}

func (a *app) newProgramsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "programs <file>",
		Aliases: []string{"segments"},
		Short:   "Print the program header table",
		Args:    cobra.ExactArgs(1),
		RunE: withFile(func(out io.Writer, f *elf.File) error {
			progs, err := f.Programs()
			printPrograms(out, progs)
			return err
		}),
	}
}

func (a *app) newSectionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sections <file>",
		Short: "Print the section header table with resolved names",
		Args:  cobra.ExactArgs(1),
		RunE: withFile(func(out io.Writer, f *elf.File) error {
			sections, err := f.Sections()
			printSections(out, sections)
			return err
		}),
	}
}

func (a *app) newAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "all <file>",
		Short: "Print the header, program headers, and section headers",
		Args:  cobra.ExactArgs(1),
		RunE: withFile(func(out io.Writer, f *elf.File) error {
			fmt.Fprintln(out, "ELF Header:")
			printHeader(out, &f.Header)

			fmt.Fprintln(out, "\nProgram Headers:")
			progs, perr := f.Programs()
			printPrograms(out, progs)

			fmt.Fprintln(out, "\nSection Headers:")
			sections, serr := f.Sections()
			printSections(out, sections)

			if perr != nil {
				return fmt.Errorf("program headers: %w", perr)
			}
			if serr != nil {
				return fmt.Errorf("section headers: %w", serr)
			}
			return nil
		}),
	}
}

func (a *app) newDumpCommand() *cobra.Command {
	var opts dump.Options
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Hexdump the leading bytes of program data sections",
		Args:  cobra.ExactArgs(1),
		RunE: withFile(func(out io.Writer, f *elf.File) error {
			entries, err := dump.Sections(f, opts)
			for i, e := range entries {
				if i > 0 {
					fmt.Fprintln(out)
				}
				if werr := dump.Hex(out, e); werr != nil {
					return werr
				}
			}
			return err
		}),
	}
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", dump.DefaultLimit, "bytes per section, negative for all")
	cmd.Flags().StringSliceVarP(&opts.Names, "section", "s", nil, "section to dump (repeatable)")
	return cmd
}

func (a *app) newBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file>",
		Short: "Browse sections and segments interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("browse needs an interactive terminal")
			}
			f, err := elf.Open(args[0])
			if err != nil {
				return err
			}
			return runBrowser(args[0], f)
		},
	}
}
