// ewscli is a small command line client for Exchange Web Services.
package main

import (
	"fmt"
	"os"

	"github.com/ewsproto/ews-go/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	verbose bool

	log = logrus.New()

	rootCmd = &cobra.Command{
		Use:           "ewscli",
		Short:         "Exchange Web Services command line client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			log.SetLevel(logrus.WarnLevel)
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// logAdapter exposes the logrus logger through the logging.Logger
// interface the library packages consume.
type logAdapter struct {
	log *logrus.Logger
}

func (a logAdapter) Logf(classification logging.Classification, format string, v ...interface{}) {
	switch classification {
	case logging.Warn:
		a.log.Warnf(format, v...)
	default:
		a.log.Debugf(format, v...)
	}
}

// promptPassword reads a password from the terminal without echo.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Enter a password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(password), nil
}
