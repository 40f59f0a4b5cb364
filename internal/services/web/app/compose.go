// Package app composes module mounts into the root HTTP handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
	"github.com/louisbranch/retina.care/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

// SessionGate supplies the login and role gates wrapped around protected
// modules.
type SessionGate interface {
	RequireLoginMiddleware() httpx.Middleware
	RequireRoleMiddleware(role.Role) httpx.Middleware
}

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	Gate             SessionGate
	PublicModules    []module.Module
	ProtectedModules []module.Module
	Policy           requestmeta.Policy
}

// Compose builds a root HTTP handler from module groups.
func Compose(input ComposeInput) (http.Handler, error) {
	if len(input.ProtectedModules) > 0 && input.Gate == nil {
		return nil, fmt.Errorf("session gate is required for protected modules")
	}
	root := http.NewServeMux()
	seen := make(map[string]string)
	csrf := requireCookieSessionSameOrigin(input.Policy)

	for _, feature := range input.PublicModules {
		if feature == nil {
			return nil, fmt.Errorf("public module is nil")
		}
		if err := mountPublicModule(root, feature, seen, csrf); err != nil {
			return nil, err
		}
	}

	for _, feature := range input.ProtectedModules {
		if feature == nil {
			return nil, fmt.Errorf("protected module is nil")
		}
		wrap := wrapProtectedModule(input.Gate, feature, csrf)
		if err := mountProtectedModule(root, feature, seen, wrap); err != nil {
			return nil, err
		}
	}

	return root, nil
}

func mountPattern(
	root *http.ServeMux,
	feature module.Module,
	pattern string,
	handler http.Handler,
	seen map[string]string,
) error {
	if previous, ok := seen[pattern]; ok {
		return fmt.Errorf("module %q duplicates route %q owned by module %q", feature.ID(), pattern, previous)
	}
	seen[pattern] = feature.ID()
	root.Handle(pattern, handler)
	return nil
}

// mountPublicModule mounts exact paths behind the same-origin check, since
// they carry account mutations, and the prefix without it.
func mountPublicModule(root *http.ServeMux, feature module.Module, seen map[string]string, csrf httpx.Middleware) error {
	mount, err := resolveMount(feature)
	if err != nil {
		return err
	}
	for _, path := range mount.Paths {
		if isProtectedPath(path) {
			return fmt.Errorf("module %q has protected path %q in public group", feature.ID(), path)
		}
		if err := mountPattern(root, feature, path, csrf(mount.Handler), seen); err != nil {
			return err
		}
	}
	if mount.Prefix == "" {
		return nil
	}
	if isProtectedPath(mount.Prefix) {
		return fmt.Errorf("module %q has protected prefix %q in public group", feature.ID(), mount.Prefix)
	}
	return mountPattern(root, feature, mount.Prefix, mount.Handler, seen)
}

func mountProtectedModule(root *http.ServeMux, feature module.Module, seen map[string]string, wrap httpx.Middleware) error {
	mount, err := resolveMount(feature)
	if err != nil {
		return err
	}
	if len(mount.Paths) > 0 {
		return fmt.Errorf("module %q: protected modules mount by prefix only", feature.ID())
	}
	if !isProtectedPath(mount.Prefix) {
		return fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.AppPrefix, mount.Prefix)
	}
	handler := wrap(mount.Handler)
	if err := mountPattern(root, feature, mount.Prefix, handler, seen); err != nil {
		return err
	}
	if alias := strings.TrimSuffix(mount.Prefix, "/"); alias != "" {
		if err := mountPattern(root, feature, alias, handler, seen); err != nil {
			return err
		}
	}
	return nil
}

func isProtectedPath(path string) bool {
	return strings.HasPrefix(path, routepath.AppPrefix)
}

func resolveMount(feature module.Module) (module.Mount, error) {
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if mount.Handler == nil {
		return module.Mount{}, fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	if mount.Prefix == "" && len(mount.Paths) == 0 {
		return module.Mount{}, fmt.Errorf("mount module %q: prefix or paths are required", feature.ID())
	}
	if mount.Prefix != "" {
		if err := validatePrefix(mount.Prefix); err != nil {
			return module.Mount{}, fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
		}
	}
	for _, path := range mount.Paths {
		if err := validatePath(path); err != nil {
			return module.Mount{}, fmt.Errorf("mount module %q has invalid path %q: %w", feature.ID(), path, err)
		}
	}
	return mount, nil
}

func validatePrefix(prefix string) error {
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if !strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

func validatePath(path string) error {
	if strings.TrimSpace(path) != path {
		return fmt.Errorf("path must not include surrounding whitespace")
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must begin with /")
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		return fmt.Errorf("path must not end with /")
	}
	return nil
}

// wrapProtectedModule runs the login gate, then the module's role gate, then
// the same-origin check.
func wrapProtectedModule(gate SessionGate, feature module.Module, csrf httpx.Middleware) httpx.Middleware {
	middleware := []httpx.Middleware{gate.RequireLoginMiddleware()}
	if gated, ok := feature.(module.RoleGated); ok {
		middleware = append(middleware, gate.RequireRoleMiddleware(gated.RequiredRole()))
	}
	middleware = append(middleware, csrf)
	return func(next http.Handler) http.Handler {
		return httpx.Chain(next, middleware...)
	}
}

func requireCookieSessionSameOrigin(policy requestmeta.Policy) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutationMethod(r) || !hasSessionCookie(r) {
				next.ServeHTTP(w, r)
				return
			}
			if !requestmeta.SameOrigin(r, policy) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutationMethod(r *http.Request) bool {
	if r == nil {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func hasSessionCookie(r *http.Request) bool {
	_, ok := sessioncookie.Read(r)
	return ok
}
