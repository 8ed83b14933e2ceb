// verdant-ledgerd serves the impact ledger: gRPC for mutations, HTTP for
// queries, SQLite for persistence, and a pluggable evidence archive.
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"

	"google.golang.org/grpc"

	"verdant.eco/ledger/creddoc"
	"verdant.eco/ledger/evidence/registry"
	"verdant.eco/ledger/httpapi"
	"verdant.eco/ledger/ledger"
	"verdant.eco/ledger/ledgerrpc"
	"verdant.eco/ledger/model"
	"verdant.eco/ledger/store"

	_ "verdant.eco/ledger/evidence/localfs"
)

func main() {
	fs := flag.NewFlagSet("verdant-ledgerd", flag.ExitOnError)
	grpcListen := fs.String("grpc-listen", "127.0.0.1:7780", "gRPC listen address")
	httpListen := fs.String("http-listen", "127.0.0.1:7781", "HTTP query API listen address")
	dbPath := fs.String("db", "verdant-ledger.db", "SQLite database path")
	admin := fs.String("admin", "", "admin identity (required)")
	backend := fs.String("evidence", "memory", "evidence archive backend name")
	requireEvidence := fs.Bool("require-archived-evidence", false, "reject claims whose evidenceRef is not archived")
	issuerKeyPath := fs.String("issuer-key", "", "ed25519 issuer seed file for credential documents (created if absent)")
	listBackends := fs.Bool("list-backends", false, "List supported evidence backends and exit")

	registry.RegisterFlags(fs, registry.UsageDaemon)

	_ = fs.Parse(os.Args[1:])
	if *listBackends {
		for _, b := range registry.List(registry.UsageDaemon) {
			if b.Description == "" {
				fmt.Fprintf(os.Stdout, "%s\n", b.Name)
				continue
			}
			fmt.Fprintf(os.Stdout, "%s\t%s\n", b.Name, b.Description)
		}
		return
	}
	if *admin == "" {
		fmt.Fprintln(os.Stderr, "missing -admin")
		os.Exit(2)
	}

	arch, closeFn, err := registry.Open(*backend, registry.UsageDaemon)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if closeFn != nil {
		defer func() { _ = closeFn() }()
	}

	st, err := store.Open(*dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer st.Close()

	clk := ledger.UnixClock{}
	l := ledger.New(model.Identity(*admin), clk)
	snap, ok, err := st.LoadLatestSnapshot(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if ok {
		l.Restore(snap)
		fmt.Fprintf(os.Stderr, "verdant-ledgerd restored snapshot (platform total %d)\n", l.PlatformTotal())
	}

	var issuerKey ed25519.PrivateKey
	if *issuerKeyPath != "" {
		issuerKey, err = loadOrCreateIssuerKey(*issuerKeyPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	srv := &ledgerrpc.Server{
		Ledger:                  l,
		Evidence:                arch,
		RequireArchivedEvidence: *requireEvidence,
		Persist: func(ctx context.Context) error {
			if err := st.SaveSnapshot(ctx, clk.Now(), l.Snapshot()); err != nil {
				return err
			}
			return mintCredentialDocs(ctx, l, st, issuerKey)
		},
	}

	lis, err := net.Listen("tcp", *grpcListen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	gs := grpc.NewServer()
	ledgerrpc.RegisterLedgerServer(gs, srv)

	httpErr := make(chan error, 1)
	go func() {
		httpErr <- httpapi.Serve(context.Background(), *httpListen, &httpapi.Server{Ledger: l, Store: st})
	}()
	grpcErr := make(chan error, 1)
	go func() {
		grpcErr <- gs.Serve(lis)
	}()

	fmt.Fprintf(os.Stderr, "verdant-ledgerd grpc=%s http=%s (evidence=%s)\n",
		lis.Addr().String(), *httpListen, *backend)

	select {
	case err := <-grpcErr:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	case err := <-httpErr:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// mintCredentialDocs renders and stores a signed document for every
// credential that does not have one yet. Documents are minted outside the
// ledger mutex; a crash between snapshot and mint is healed on the next
// mutation.
func mintCredentialDocs(ctx context.Context, l *ledger.Ledger, st *store.SQLite, issuerKey ed25519.PrivateKey) error {
	if issuerKey == nil {
		return nil
	}
	for _, cred := range l.Snapshot().Credentials {
		if _, _, err := st.GetCredentialDoc(ctx, cred.ID); err == nil {
			continue
		} else if err != store.ErrNotFound {
			return err
		}
		doc, err := creddoc.SignEd25519(creddoc.FromCredential(cred), issuerKey)
		if err != nil {
			return fmt.Errorf("sign credential %d: %w", cred.ID, err)
		}
		if err := st.PutCredentialDoc(ctx, cred.ID, doc.CID(), doc.Raw); err != nil {
			return err
		}
	}
	return nil
}

// loadOrCreateIssuerKey reads a base64 ed25519 seed from path, generating
// and writing one on first use.
func loadOrCreateIssuerKey(path string) (ed25519.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err == nil {
		seed, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(b)))
		if err != nil || len(seed) != ed25519.SeedSize {
			return nil, fmt.Errorf("invalid issuer seed in %s", path)
		}
		return ed25519.NewKeyFromSeed(seed), nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	enc := base64.StdEncoding.EncodeToString(seed) + "\n"
	if err := os.WriteFile(path, []byte(enc), 0o600); err != nil {
		return nil, err
	}
	return ed25519.NewKeyFromSeed(seed), nil
}
