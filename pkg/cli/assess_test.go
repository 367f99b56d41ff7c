package cli_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestAssessCommand(t *testing.T) {
	t.Run("completes the questionnaire", func(t *testing.T) {
		out, err := runCommand(t, "1\n1\nmfa, incident\n4\nq\n",
			"assess", "--no-color", "--advance-delay", "0s")
		gt.NoError(t, err).Required()

		gt.S(t, out).Contains("[1/4]")
		gt.S(t, out).Contains("[4/4]")
		gt.S(t, out).Contains(" LOW ")
		gt.S(t, out).Contains("(score 0)")
	})

	t.Run("custom content", func(t *testing.T) {
		path := writeCatalog(t, "tiers.toml", validCatalog)
		out, err := runCommand(t, "3\n3\n\n1\n",
			"assess", "--no-color", "--advance-delay", "0s", "--content-file", path)
		gt.NoError(t, err).Required()

		gt.S(t, out).Contains("Essential entity")
		gt.S(t, out).Contains("  2. Audit the supply chain")
	})

	t.Run("ends quietly on early quit", func(t *testing.T) {
		out, err := runCommand(t, "q\n", "assess", "--no-color", "--advance-delay", "0s")
		gt.NoError(t, err).Required()
		gt.B(t, strings.Contains(out, "[2/4]")).False()
	})

	t.Run("negative delay is rejected", func(t *testing.T) {
		_, err := runCommand(t, "", "assess", "--advance-delay", "-1s")
		gt.Error(t, err)
	})
}
