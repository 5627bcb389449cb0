package dblog

import "strings"

const (
	rankTrace = iota
	rankDebug
	rankInfo
	rankWarn
	rankError
	rankFatal
	rankPanic
)

var levelNames = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}

func levelRank(level string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "trc":
		return rankTrace, true
	case "debug", "dbg":
		return rankDebug, true
	case "info", "inf":
		return rankInfo, true
	case "warn", "warning", "wrn":
		return rankWarn, true
	case "error", "err":
		return rankError, true
	case "fatal", "ftl":
		return rankFatal, true
	case "panic", "pnc":
		return rankPanic, true
	default:
		return 0, false
	}
}

func canonicalLevel(rank int) string {
	if rank < 0 || rank >= len(levelNames) {
		return "info"
	}
	return levelNames[rank]
}
