package bus

import "strings"

// trie indexes subscriptions by topic pattern. Unlike an MQTT routing
// table it collects every matching subscription, not just the first
// pattern: a message fans out to all subscribers. Not safe for
// concurrent use; the Bus serializes access.
type trie struct {
	root *trieNode
}

type trieNode struct {
	children map[string]*trieNode
	matchAny *trieNode // + wildcard
	matchAll *trieNode // # wildcard
	subs     []*Subscription
}

func newTrie() *trie {
	return &trie{root: &trieNode{}}
}

func (t *trie) insert(pattern string, sub *Subscription) error {
	return t.root.insert(pattern, sub)
}

// collect appends every subscription matching topic to out and returns
// the extended slice.
func (t *trie) collect(topic string, out []*Subscription) []*Subscription {
	return t.root.collect(topic, out)
}

func (t *trie) remove(pattern string, sub *Subscription) {
	t.root.remove(pattern, sub)
}

func (n *trieNode) insert(pattern string, sub *Subscription) error {
	if pattern == "" {
		n.subs = append(n.subs, sub)
		return nil
	}

	first, rest := splitLevel(pattern)
	switch first {
	case "+":
		if n.matchAny == nil {
			n.matchAny = &trieNode{}
		}
		return n.matchAny.insert(rest, sub)
	case "#":
		if rest != "" {
			return ErrInvalidPattern
		}
		if n.matchAll == nil {
			n.matchAll = &trieNode{}
		}
		n.matchAll.subs = append(n.matchAll.subs, sub)
		return nil
	default:
		if n.children == nil {
			n.children = make(map[string]*trieNode)
		}
		child, ok := n.children[first]
		if !ok {
			child = &trieNode{}
			n.children[first] = child
		}
		return child.insert(rest, sub)
	}
}

func (n *trieNode) collect(topic string, out []*Subscription) []*Subscription {
	if n.matchAll != nil {
		out = append(out, n.matchAll.subs...)
	}
	if topic == "" {
		return append(out, n.subs...)
	}

	first, rest := splitLevel(topic)
	if n.children != nil {
		if child, ok := n.children[first]; ok {
			out = child.collect(rest, out)
		}
	}
	if n.matchAny != nil {
		out = n.matchAny.collect(rest, out)
	}
	return out
}

func (n *trieNode) remove(pattern string, sub *Subscription) {
	if pattern == "" {
		n.subs = withoutSub(n.subs, sub)
		return
	}

	first, rest := splitLevel(pattern)
	switch first {
	case "+":
		if n.matchAny != nil {
			n.matchAny.remove(rest, sub)
		}
	case "#":
		if n.matchAll != nil {
			n.matchAll.subs = withoutSub(n.matchAll.subs, sub)
		}
	default:
		if n.children != nil {
			if child, ok := n.children[first]; ok {
				child.remove(rest, sub)
			}
		}
	}
}

func withoutSub(subs []*Subscription, sub *Subscription) []*Subscription {
	out := subs[:0]
	for _, s := range subs {
		if s != sub {
			out = append(out, s)
		}
	}
	return out
}

func splitLevel(path string) (first, rest string) {
	idx := strings.Index(path, "/")
	if idx == -1 {
		return path, ""
	}
	return path[:idx], path[idx+1:]
}
