// seehuhn.de/go/xmpmeta - Extensible Metadata Platform in Go
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seehuhn.de/go/xmpmeta"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xmpdump",
		Short: "Inspect and edit XMP metadata packets",
		Long: `xmpdump reads serialized XMP packets (RDF/XML), lists their properties
and can modify single properties in place.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
				color.NoColor = true
			}
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().Bool("aliases", false, "register the standard XMP aliases")

	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newSetCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newSerializeCmd())
	rootCmd.AddCommand(newNamespacesCmd())
	return rootCmd
}

// newSession starts a session, as configured by the global flags.
func newSession(cmd *cobra.Command) (*xmpmeta.Session, error) {
	var opts []xmpmeta.Option
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			log = zap.NewNop()
		}
		opts = append(opts, xmpmeta.WithLogger(log))
	}
	if aliases, _ := cmd.Flags().GetBool("aliases"); aliases {
		opts = append(opts, xmpmeta.WithStandardAliases())
	}
	return xmpmeta.NewSession(opts...)
}

func readTree(s *xmpmeta.Session, fname string) (*xmpmeta.Tree, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	t, err := s.Parse(bytes.NewReader(data), 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return t, nil
}

func writeTree(cmd *cobra.Command, t *xmpmeta.Tree, fname string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opt, err := cfg.options()
	if err != nil {
		return err
	}
	data, err := t.Serialize(opt)
	if err != nil {
		return err
	}
	return os.WriteFile(fname, data, 0o644)
}

// resolveNS accepts either a registered prefix or a namespace URI.
func resolveNS(ns string) string {
	if uri, ok := xmpmeta.GetNamespaceURI(ns); ok {
		return uri
	}
	return ns
}

// withTree runs fn on the tree read from the named file.
func withTree(cmd *cobra.Command, fname string, fn func(*xmpmeta.Tree) error) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	t, err := readTree(s, fname)
	if err != nil {
		return err
	}
	return fn(t)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE",
		Short: "List all properties of an XMP packet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTree(cmd, args[0], func(t *xmpmeta.Tree) error {
				return dumpTree(cmd.OutOrStdout(), t)
			})
		},
	}
}

func dumpTree(w io.Writer, t *xmpmeta.Tree) error {
	heading := color.New(color.FgCyan, color.Bold)
	for _, ns := range t.Schemas() {
		pfx, _ := xmpmeta.GetNamespacePrefix(ns)
		if _, err := heading.Fprintf(w, "%s (%s)\n", pfx, ns); err != nil {
			return err
		}
		it, err := t.Iterate(ns, "", xmpmeta.IncludeAll)
		if err != nil {
			return err
		}
		for item := range it.All() {
			if item.Path == "" {
				continue
			}
			line := "  " + item.Path
			if item.Flags.IsSimple() {
				line += fmt.Sprintf(" = %q", item.Value)
			}
			if item.Flags != 0 {
				line += "  (" + item.Flags.String() + ")"
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get FILE NS PATH",
		Short: "Print the value of a property",
		Long: `Print the value of a simple property.  NS is a namespace URI
or a registered prefix, PATH is an XMP path like "dc:title[1]".`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTree(cmd, args[0], func(t *xmpmeta.Tree) error {
				val, flags, err := t.GetProperty(resolveNS(args[1]), args[2])
				if err != nil {
					return err
				}
				if !flags.IsSimple() {
					return fmt.Errorf("%s is not a simple property (%s)", args[2], flags)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), val)
				return err
			})
		},
	}
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set FILE NS PATH VALUE",
		Short: "Set a simple property and rewrite the file",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTree(cmd, args[0], func(t *xmpmeta.Tree) error {
				var flags xmpmeta.PropertyFlags
				if uri, _ := cmd.Flags().GetBool("uri"); uri {
					flags |= xmpmeta.ValueIsURI
				}
				err := t.SetProperty(resolveNS(args[1]), args[2], args[3], flags)
				if err != nil {
					return err
				}
				return writeTree(cmd, t, args[0])
			})
		},
	}
	cmd.Flags().Bool("uri", false, "store the value as a URI")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete FILE NS PATH",
		Short: "Delete a property and rewrite the file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTree(cmd, args[0], func(t *xmpmeta.Tree) error {
				if err := t.DeleteProperty(resolveNS(args[1]), args[2]); err != nil {
					return err
				}
				return writeTree(cmd, t, args[0])
			})
		},
	}
}

func newSerializeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serialize FILE",
		Short: "Re-serialize an XMP packet to standard output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTree(cmd, args[0], func(t *xmpmeta.Tree) error {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				opt, err := cfg.options()
				if err != nil {
					return err
				}
				if omit, _ := cmd.Flags().GetBool("omit-wrapper"); omit {
					opt.Flags |= xmpmeta.OmitPacketWrapper
				}
				data, err := t.Serialize(opt)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			})
		},
	}
	cmd.Flags().Bool("compact", false, "use the compact RDF form")
	cmd.Flags().String("encoding", "utf-8", "output encoding (utf-8, utf-16be, utf-16le, utf-32be, utf-32le)")
	cmd.Flags().Int("padding", 0, "number of padding bytes, 0 for the default")
	cmd.Flags().Bool("omit-wrapper", false, "omit the xpacket wrapper")
	return cmd
}

func newNamespacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "namespaces",
		Short: "List the registered namespaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			w := cmd.OutOrStdout()
			if err := xmpmeta.DumpNamespaces(w); err != nil {
				return err
			}
			if aliases, _ := cmd.Flags().GetBool("aliases"); aliases {
				if _, err := color.New(color.Bold).Fprintln(w, "\naliases:"); err != nil {
					return err
				}
				return xmpmeta.DumpAliases(w)
			}
			return nil
		},
	}
}
