package coordinator

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"promptlycoach-be/internal/constant"

	"github.com/google/uuid"
)

const tokenSuffixLength = 9

// NewSessionToken returns chat_<unix millis>_<9 base36 chars>.
func NewSessionToken(now time.Time) string {
	u := uuid.New()
	suffix := new(big.Int).SetBytes(u[:]).Text(36)
	if len(suffix) < tokenSuffixLength {
		suffix = strings.Repeat("0", tokenSuffixLength-len(suffix)) + suffix
	}
	suffix = suffix[len(suffix)-tokenSuffixLength:]
	return fmt.Sprintf("%s%d_%s", constant.ChatSessionTokenPrefix, now.UnixMilli(), suffix)
}
