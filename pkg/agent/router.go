package agent

// RuntimeTopic is the fixed topic on which actions for the execution
// runtime (browsing, file and shell access) are published.
const RuntimeTopic = "agent/runtime"

// Route maps an action to the topic it must be published on. The second
// return value is false for kinds that are never published (none,
// thought, leave): those only affect local history.
func Route(action *Action, outputTopic string) (string, bool) {
	switch action.Kind {
	case KindSpeak:
		return outputTopic, true
	case KindBrowse, KindBrowseAction, KindWrite, KindRead, KindRun:
		return RuntimeTopic, true
	default:
		return "", false
	}
}
