package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/dmitrymomot/imgstore/core/handler"
)

type methodTyp uint

const (
	mCONNECT methodTyp = 1 << iota
	mDELETE
	mGET
	mHEAD
	mOPTIONS
	mPATCH
	mPOST
	mPUT
	mTRACE
)

var mALL = mCONNECT | mDELETE | mGET | mHEAD |
	mOPTIONS | mPATCH | mPOST | mPUT | mTRACE

var methodMap = map[string]methodTyp{
	http.MethodConnect: mCONNECT,
	http.MethodDelete:  mDELETE,
	http.MethodGet:     mGET,
	http.MethodHead:    mHEAD,
	http.MethodOptions: mOPTIONS,
	http.MethodPatch:   mPATCH,
	http.MethodPost:    mPOST,
	http.MethodPut:     mPUT,
	http.MethodTrace:   mTRACE,
}

var reverseMethodMap = map[methodTyp]string{
	mCONNECT: http.MethodConnect,
	mDELETE:  http.MethodDelete,
	mGET:     http.MethodGet,
	mHEAD:    http.MethodHead,
	mOPTIONS: http.MethodOptions,
	mPATCH:   http.MethodPatch,
	mPOST:    http.MethodPost,
	mPUT:     http.MethodPut,
	mTRACE:   http.MethodTrace,
}

// endpoint holds the handler registered for a single method on a node.
type endpoint[C handler.Context] struct {
	handler handler.HandlerFunc[C]
	pattern string
}

// endpoints maps method bits to their registered endpoint.
type endpoints[C handler.Context] map[methodTyp]*endpoint[C]

// node is a segment of the routing tree. Each level of the tree matches one
// path segment: exact matches via static children, a single {name} parameter
// child, or a trailing catch-all child that consumes the rest of the path.
type node[C handler.Context] struct {
	static    map[string]*node[C]
	param     *node[C]
	paramKey  string
	wildcard  *node[C]
	endpoints endpoints[C]
}

// splitPath breaks a path into its segments. The root path yields no segments.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// insertRoute registers a handler for the method bits under the given pattern
// and returns the terminal node. It panics on malformed patterns since routes
// are registered at startup.
func (n *node[C]) insertRoute(method methodTyp, pattern string, h handler.HandlerFunc[C]) *node[C] {
	segs := splitPath(pattern)
	curr := n
	seen := make(map[string]bool, len(segs))

	for i, seg := range segs {
		switch {
		case seg == "":
			panic(fmt.Errorf("%w: empty segment in '%s'", ErrInvalidPattern, pattern))

		case seg == "*":
			if i != len(segs)-1 {
				panic(fmt.Errorf("%w: '%s'", ErrWildcardPosition, pattern))
			}
			if curr.wildcard == nil {
				curr.wildcard = &node[C]{}
			}
			curr = curr.wildcard

		case seg[0] == '{' && seg[len(seg)-1] == '}':
			key := seg[1 : len(seg)-1]
			if key == "" {
				panic(fmt.Errorf("%w: unnamed parameter in '%s'", ErrInvalidPattern, pattern))
			}
			if seen[key] {
				panic(fmt.Errorf("%w: '%s' in '%s'", ErrDuplicateParam, key, pattern))
			}
			seen[key] = true
			if curr.param == nil {
				curr.param = &node[C]{}
				curr.paramKey = key
			} else if curr.paramKey != key {
				panic(fmt.Errorf("%w: parameter '%s' conflicts with '%s'", ErrInvalidPattern, key, curr.paramKey))
			}
			curr = curr.param

		default:
			if curr.static == nil {
				curr.static = make(map[string]*node[C])
			}
			child, ok := curr.static[seg]
			if !ok {
				child = &node[C]{}
				curr.static[seg] = child
			}
			curr = child
		}
	}

	curr.setEndpoint(method, h, pattern)
	return curr
}

func (n *node[C]) setEndpoint(method methodTyp, h handler.HandlerFunc[C], pattern string) {
	if n.endpoints == nil {
		n.endpoints = make(endpoints[C])
	}
	if method&mALL == mALL {
		n.endpoints[mALL] = &endpoint[C]{handler: h, pattern: pattern}
		return
	}
	n.endpoints[method] = &endpoint[C]{handler: h, pattern: pattern}
}

// findRoute resolves a request path. It returns the matched node, its
// endpoints (used to build the Allow header when the method has no handler),
// the handler for the method if any, and the extracted path parameters.
// The catch-all remainder is stored under the "*" key.
func (n *node[C]) findRoute(method methodTyp, path string) (*node[C], endpoints[C], handler.HandlerFunc[C], map[string]string) {
	params := make(map[string]string)
	target := n.match(splitPath(path), params)
	if target == nil {
		return nil, nil, nil, nil
	}

	eps := target.endpoints
	var fn handler.HandlerFunc[C]
	if ep, ok := eps[method]; ok && ep.handler != nil {
		fn = ep.handler
	} else if ep, ok := eps[mALL]; ok && ep.handler != nil {
		fn = ep.handler
	}
	return target, eps, fn, params
}

// match walks the tree segment by segment. Static children win over the
// parameter child; the parameter match is undone when a deeper segment fails
// so the walk can fall through to the catch-all.
func (n *node[C]) match(segs []string, params map[string]string) *node[C] {
	if len(segs) == 0 {
		if n.endpoints != nil {
			return n
		}
		return nil
	}

	seg := segs[0]

	if child, ok := n.static[seg]; ok {
		if found := child.match(segs[1:], params); found != nil {
			return found
		}
	}

	if n.param != nil && seg != "" {
		params[n.paramKey] = seg
		if found := n.param.match(segs[1:], params); found != nil {
			return found
		}
		delete(params, n.paramKey)
	}

	if n.wildcard != nil && n.wildcard.endpoints != nil {
		params["*"] = strings.Join(segs, "/")
		return n.wildcard
	}

	return nil
}

// routes walks the tree and returns every registered route.
func (n *node[C]) routes() []Route {
	var out []Route
	n.walk(func(eps endpoints[C]) {
		for mt, ep := range eps {
			if ep == nil || ep.handler == nil {
				continue
			}
			method := "*"
			if mt != mALL {
				method = reverseMethodMap[mt]
			}
			out = append(out, Route{Method: method, Pattern: ep.pattern})
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pattern != out[j].Pattern {
			return out[i].Pattern < out[j].Pattern
		}
		return out[i].Method < out[j].Method
	})
	return out
}

func (n *node[C]) walk(fn func(eps endpoints[C])) {
	if n.endpoints != nil {
		fn(n.endpoints)
	}
	for _, child := range n.static {
		child.walk(fn)
	}
	if n.param != nil {
		n.param.walk(fn)
	}
	if n.wildcard != nil {
		n.wildcard.walk(fn)
	}
}
