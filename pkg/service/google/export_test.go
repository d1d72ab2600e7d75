package google

var (
	ParseSender      = parseSender
	ExtractPlainText = extractPlainText
	BuildRawMessage  = buildRawMessage
)
