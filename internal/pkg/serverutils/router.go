package serverutils

import (
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const paramLocalPrefix = "route.param."

// RouteRegistrar is implemented by every controller.
type RouteRegistrar interface {
	RegisterRoutes(r *Router)
}

type route struct {
	param    string
	handlers map[string]fiber.Handler
}

func (r *route) allow() string {
	methods := make([]string, 0, len(r.handlers))
	for m := range r.handlers {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}

// Router is a flat route table under one prefix. A route may end in a single
// ":name" segment; nothing else is pattern matched.
type Router struct {
	prefix string
	exact  map[string]*route
	suffix map[string]*route
}

func NewRouter(prefix string) *Router {
	return &Router{
		prefix: strings.TrimSuffix(prefix, "/"),
		exact:  make(map[string]*route),
		suffix: make(map[string]*route),
	}
}

func (r *Router) Get(path string, h fiber.Handler)  { r.Add(fiber.MethodGet, path, h) }
func (r *Router) Post(path string, h fiber.Handler) { r.Add(fiber.MethodPost, path, h) }

func (r *Router) Add(method, path string, h fiber.Handler) {
	path = "/" + strings.Trim(path, "/")

	table, key, param := r.exact, path, ""
	if i := strings.LastIndex(path, "/:"); i >= 0 {
		table, key, param = r.suffix, path[:i], path[i+2:]
	}

	rt, ok := table[key]
	if !ok {
		rt = &route{param: param, handlers: make(map[string]fiber.Handler)}
		table[key] = rt
	}
	rt.handlers[method] = h
}

// Matches reports whether the path belongs to this router's prefix.
func (r *Router) Matches(path string) bool {
	return path == r.prefix || strings.HasPrefix(path, r.prefix+"/")
}

// Handle dispatches by exact path, then by splitting off the last segment.
// A known path with an unregistered method is a 405.
func (r *Router) Handle(ctx *fiber.Ctx) error {
	rel := strings.TrimSuffix(strings.TrimPrefix(ctx.Path(), r.prefix), "/")
	if rel == "" {
		rel = "/"
	}

	rt, ok := r.exact[rel]
	if !ok {
		i := strings.LastIndex(rel, "/")
		base, segment := rel[:i], rel[i+1:]
		if rt, ok = r.suffix[base]; !ok || segment == "" {
			return fiber.ErrNotFound
		}
		ctx.Locals(paramLocalPrefix+rt.param, segment)
	}

	h, ok := rt.handlers[ctx.Method()]
	if !ok {
		ctx.Set(fiber.HeaderAllow, rt.allow())
		return fiber.ErrMethodNotAllowed
	}
	return h(ctx)
}

// Param returns the trailing segment captured for name.
func Param(ctx *fiber.Ctx, name string) string {
	v, _ := ctx.Locals(paramLocalPrefix + name).(string)
	return v
}
