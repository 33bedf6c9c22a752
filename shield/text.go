package shield

// Footer is appended to every outgoing text so it carries a deterrent
// even when the content is read outside this client.
const Footer = "\n\n[🛡️ Protected by TwitterS]"

// Annotate appends the safety footer to text. It is total and pure,
// and applying it twice appends the footer twice: the workflow must
// call it exactly once per submission.
func Annotate(text string) string {
	return text + Footer
}
