package agent

import (
	"fmt"
	"strings"

	"github.com/parleylab/parley/pkg/gen"
)

// decisionBase is the head of the decision prompt. The tail enumerates
// the available actions and their arguments.
const decisionBase = `
	Imagine that you are a work colleague of the other persons.
	Here is the conversation between you and them.

	You are {agent_name} in the conversation.

	{message_history}
	and you plan to {goal}.
	## Action
	What is your next thought or action? Your response must be in JSON format.

	It must be an object, and it must contain two fields:
	* ` + "`action`" + `, which is one of the actions below
	* ` + "`args`" + `, which is a map of key-value pairs, specifying the arguments for that action
`

// actionDescriptions tells the model what each action does and which
// arguments it takes.
var actionDescriptions = map[Kind]string{
	KindSpeak: "`speak` - you can talk to the other agents to share information or ask them something. Arguments:\n" +
		"  * `content` - the message to send to the other agents (should be short)",
	KindThought: "`thought` - only use this rarely to make a plan, set a goal, record your thoughts. Arguments:\n" +
		"  * `content` - the message you send yourself to organize your thoughts (should be short). You cannot think more than 2 turns.",
	KindNone: "`none` - you can choose not to take an action if you are waiting for some data",
	KindBrowse: "`browse` - opens a web page. Arguments:\n" +
		"  * `url` - the URL to open. When you browse the web you must use `none` until you get some information back. " +
		"When you get the information back you must summarize it and explain it to the other agents.",
	KindBrowseAction: "`browse_action` - actions you can take on a web browser. Arguments:\n" +
		"  * `command` - the command to run, a single string value. Available commands:\n" +
		"      goto(url) - navigate to a url, e.g. goto('http://www.example.com')\n" +
		"      go_back() - navigate to the previous page in history\n" +
		"      go_forward() - navigate to the next page in history\n" +
		"      noop(wait_ms) - do nothing, optionally waiting; use this to get the current page content or wait for it to load, e.g. noop(500)\n" +
		"      scroll(delta_x, delta_y) - scroll horizontally and vertically, amounts in pixels, e.g. scroll(0, 200)\n" +
		"      fill(bid, value) - fill out a form field, e.g. fill('237', 'example value')\n" +
		"      select_option(bid, options) - select one or multiple options in a select element, e.g. select_option('a48', 'blue')\n" +
		"      click(bid) - click an element, e.g. click('a51')\n" +
		"      dblclick(bid) - double click an element, e.g. dblclick('12')\n" +
		"      hover(bid) - hover over an element, e.g. hover('b8')\n" +
		"      press(bid, key_comb) - focus the element and press a combination of keys, e.g. press('a26', 'ControlOrMeta+a')\n" +
		"      focus(bid) - focus the matching element, e.g. focus('b455')\n" +
		"      clear(bid) - clear an input field, e.g. clear('996')\n" +
		"      drag_and_drop(from_bid, to_bid) - perform a drag and drop, e.g. drag_and_drop('56', '498')\n" +
		"      upload_file(bid, file) - click an element and select one or multiple input files for upload, e.g. upload_file('572', '/home/user/my_receipt.pdf')",
	KindRead: "`read` - reads the content of a file. Arguments:\n" +
		"  * `path` - the path of the file to read",
	KindWrite: "`write` - writes the content to a file. Arguments:\n" +
		"  * `path` - the path of the file to write\n" +
		"  * `content` - the content to write to the file",
	KindRun: "`run` - runs a command on the command line in a Linux shell. Arguments:\n" +
		"  * `command` - the command to run",
	KindLeave: "`leave` - if your goals have been completed or abandoned, and you're absolutely certain " +
		"that you've completed your task and have tested your work, use the leave action to stop working.",
}

// decisionTemplate builds the decision prompt for the selected actions.
// Placeholders: {agent_name}, {message_history}, {goal}.
func decisionTemplate(selected []Kind) gen.Template {
	var sb strings.Builder
	sb.WriteString(decisionBase)
	for i, kind := range selected {
		desc, ok := actionDescriptions[kind]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "\n[%d] %s\n", i+1, desc)
	}
	sb.WriteString("\nYou can use the `speak` action to engage with the other agents. " +
		"Again, you must reply with JSON, and only with JSON.")
	return gen.Template(sb.String())
}
