package localfs

import (
	"flag"
	"fmt"

	"verdant.eco/ledger/evidence"
	"verdant.eco/ledger/evidence/registry"
)

var flagLocalDir string

func init() {
	registry.MustRegister(registry.Backend{
		Name:        "localfs",
		Description: "Local filesystem evidence archive (directory)",
		Usage:       registry.UsageCLI | registry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagLocalDir, "localfs-dir", "", "evidence directory (for --evidence=localfs)")
		},
		Open: func() (evidence.Archive, func() error, error) {
			if flagLocalDir == "" {
				return nil, nil, fmt.Errorf("missing --localfs-dir")
			}
			a, err := New(flagLocalDir)
			return a, nil, err
		},
	})
}
