// Command restrictionless runs the demonstration problems of the bracketing
// searches and of Newton's method.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("optimization failed")
		os.Exit(1)
	}
}
