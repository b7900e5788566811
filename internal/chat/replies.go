package chat

import (
	"fmt"

	"listbot/internal/output"
)

// Fixed replies.
const (
	ReplyNoLists       = "No lists created yet."
	ReplyListNotFound  = "❌ List not found."
	ReplyListEmpty     = "❌ List is empty."
	ReplyInvalidNumber = "❌ Invalid number."
	ReplyDeleteUsage   = "❌ Use: delete 2"
	ReplyEditUsage     = "❌ Use: edit 2 -> new text"
	ReplyCreateUsage   = "❌ Use: create list - Name"
)

// HelpText is sent when a message matches no command.
const HelpText = "Commands:\n" +
	"• Create list - Name\n" +
	"• Name - Item\n" +
	"• lists (show all lists)\n\n" +
	"Deleting:\n" +
	"• Delete from Name\n" +
	"• delete 2\n\n" +
	"Editing:\n" +
	"• Edit from Name\n" +
	"• edit 2 -> new text\n\n" +
	"• Name (show contents)\n" +
	"• cancel (abandon a pending delete or edit)"

func replyLists(names []string) string {
	return "📂 " + output.Emphasis("Your Lists:") + "\n" + output.Bullets(names)
}

func replyCreated(name string) string {
	return "✅ List created: " + output.Emphasis(name)
}

func replyAlreadyExists(name string) string {
	return "❌ List already exists: " + output.Emphasis(name)
}

func replyDeleteMenu(name string, items []string) string {
	return fmt.Sprintf("📃 %s\n%s\n\nReply with: delete 2",
		output.Emphasis("Items in "+name+":"), output.Enumerate(items))
}

func replyEditMenu(name string, items []string) string {
	return fmt.Sprintf("✏️ %s\n%s\n\nReply with:\nedit 2 -> new text",
		output.Emphasis("Items in "+name+":"), output.Enumerate(items))
}

func replyAdded(name, item string) string {
	return fmt.Sprintf("➕ Added to %s: %s", output.Emphasis(name), output.Escape(item))
}

func replyShow(name string, items []string) string {
	if len(items) == 0 {
		return fmt.Sprintf("📃 %s is empty.", output.Emphasis(name))
	}
	return fmt.Sprintf("📃 %s\n%s", output.Emphasis(name), output.Bullets(items))
}

func replyDeleted(name, item string) string {
	return fmt.Sprintf("🗑️ Deleted from %s:\n%s", output.Emphasis(name), output.Escape(item))
}

func replyEdited(name, old, replacement string) string {
	return fmt.Sprintf("✏️ Edited in %s:\n%s → %s", output.Emphasis(name), output.Escape(old), output.Escape(replacement))
}

func replyCancelled(kind, name string) string {
	return fmt.Sprintf("👌 Cancelled %s from %s.", kind, output.Emphasis(name))
}
