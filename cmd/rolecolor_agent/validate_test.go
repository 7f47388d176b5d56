package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDocument = `\documentclass{article}
\begin{document}
Hello
\end{document}
`

const unbalancedDocument = `\documentclass{article}
\begin{document}
{unclosed
\end{document}
`

func TestValidateCommand_Success(t *testing.T) {
	binaryPath := getBinaryPath(t)

	texPath := filepath.Join(t.TempDir(), "resume.tex")
	require.NoError(t, os.WriteFile(texPath, []byte(validDocument), 0644))

	cmd := exec.Command(binaryPath, "validate", "--in", texPath)
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err, "command should succeed: %s", string(output))
	assert.Contains(t, string(output), "Validation passed")
}

func TestValidateCommand_UnbalancedBraces(t *testing.T) {
	binaryPath := getBinaryPath(t)

	texPath := filepath.Join(t.TempDir(), "resume.tex")
	require.NoError(t, os.WriteFile(texPath, []byte(unbalancedDocument), 0644))

	cmd := exec.Command(binaryPath, "validate", "--in", texPath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail on structural errors")
	assert.Contains(t, string(output), "VALIDATION")
}

func TestValidateCommand_MissingFile(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "validate", "--in", "does-not-exist.tex")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "validation failed")
}
