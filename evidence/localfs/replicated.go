package localfs

import (
	"flag"
	"fmt"

	"verdant.eco/ledger/evidence"
	"verdant.eco/ledger/evidence/registry"
)

var (
	flagPrimaryDir string
	flagMirrorDir  string
)

func init() {
	registry.MustRegister(registry.Backend{
		Name:        "replicated",
		Description: "Replicated evidence archive (primary + mirror directories)",
		Usage:       registry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagPrimaryDir, "replicated-primary-dir", "", "primary evidence directory (for --evidence=replicated)")
			fs.StringVar(&flagMirrorDir, "replicated-mirror-dir", "", "mirror evidence directory (for --evidence=replicated)")
		},
		Open: func() (evidence.Archive, func() error, error) {
			if flagPrimaryDir == "" || flagMirrorDir == "" {
				return nil, nil, fmt.Errorf("missing --replicated-primary-dir or --replicated-mirror-dir")
			}
			if flagPrimaryDir == flagMirrorDir {
				return nil, nil, fmt.Errorf("primary and mirror directories must differ")
			}
			primary, err := New(flagPrimaryDir)
			if err != nil {
				return nil, nil, err
			}
			mirror, err := New(flagMirrorDir)
			if err != nil {
				return nil, nil, err
			}
			return evidence.Replicating{Backends: []evidence.Named{
				{Name: "primary", Archive: primary},
				{Name: "mirror", Archive: mirror},
			}}, nil, nil
		},
	})
}
