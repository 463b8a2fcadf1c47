// Package main generates a self-signed server certificate and key for
// running the mock API over HTTPS, writing them under the "certs" directory.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/helppsico/mockapi/internal/certgen"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "certgen:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("certgen", flag.ContinueOnError)
	dir := fs.String("dir", "certs", "output directory")
	hosts := fs.String("hosts", "localhost,127.0.0.1", "comma-separated host names and IPs")
	days := fs.Int("days", 365, "validity in days")
	if err := fs.Parse(args); err != nil {
		return err
	}

	certPEM, keyPEM, err := certgen.SelfSigned(splitHosts(*hosts), time.Duration(*days)*24*time.Hour)
	if err != nil {
		return err
	}
	certPath, keyPath, err := certgen.WriteFiles(*dir, certPEM, keyPEM)
	if err != nil {
		return err
	}

	fmt.Printf("Certificate written to %s\nKey written to %s\n", certPath, keyPath)
	fmt.Printf("Start the server with -tls-cert %s -tls-key %s\n", certPath, keyPath)
	return nil
}

func splitHosts(s string) []string {
	var hosts []string
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}
