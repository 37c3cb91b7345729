package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/louisbranch/lastarena/internal/arena/domain"
)

// ReplaySignature computes a content-addressed hash over the inputs and
// outputs that define one resolved turn. Two runs of the same build
// producing the same signature sequence resolved identically; the
// signature is observability for determinism audits, not behavior.
func ReplaySignature(rulesetVersion, seed string, turnNumber int, phase domain.CyclePhase, templateID string, participantCharacterIDs, eliminatedCharacterIDs []string) string {
	var b strings.Builder
	b.WriteString(rulesetVersion)
	b.WriteByte('|')
	b.WriteString(seed)
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(turnNumber))
	b.WriteByte('|')
	b.WriteString(phase.String())
	b.WriteByte('|')
	b.WriteString(templateID)
	b.WriteByte('|')
	b.WriteString(strings.Join(participantCharacterIDs, ","))
	b.WriteByte('|')
	b.WriteString(strings.Join(eliminatedCharacterIDs, ","))

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
