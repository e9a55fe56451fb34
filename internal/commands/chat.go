package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/dmateus/plantdoc/internal/chat"
	"github.com/dmateus/plantdoc/internal/models"
	"github.com/dmateus/plantdoc/internal/render"
	"github.com/dmateus/plantdoc/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Talk to the farming assistant",
	Long: `Start an interactive chat with the PlantDoc farming assistant, or
ask a single question directly.

Type 'exit', 'quit', or press Esc to end an interactive session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	deps, err := NewDependencies()
	if err != nil {
		return err
	}

	conversation := chat.NewConversation(deps.Client)

	// One-shot question: print the reply and exit
	if len(args) > 0 {
		return runChatOnce(deps, conversation, args[0])
	}

	principal := ""
	if p, ok := deps.Session.Current(); ok {
		principal = p.DisplayName
	}
	return tui.RunChat(conversation, principal)
}

func runChatOnce(deps *Dependencies, conversation *chat.Conversation, question string) error {
	spin := newSpinner("Asking the assistant")
	spin.start()

	if !conversation.Send(question) {
		spin.stopWithError()
		return fmt.Errorf("question cannot be empty")
	}
	spin.stopWithSuccess("Done")

	log := conversation.Log()
	reply := log[len(log)-1]
	if reply.Speaker != models.SpeakerAssistant {
		return fmt.Errorf("no reply received")
	}

	width := getTerminalWidth() - 4
	if width < 40 {
		width = 40
	}
	if width > 100 {
		width = 100
	}

	rendered, err := render.Markdown(reply.Text, render.FromConfig(deps.Config.Markdown, width))
	if err != nil {
		rendered = reply.Text
	}
	fmt.Println(strings.TrimRight(rendered, "\n"))

	if deps.Config.CopyToClipboard {
		if err := clipboard.WriteAll(reply.Text); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to copy to clipboard: %v\n", err)
		}
	}
	return nil
}
