package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/louisbranch/tenantnotes/internal/services/web/module"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/httpx"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/tenantnotes/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/tenantnotes/internal/services/web/routepath"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	Dependencies        module.Dependencies
	PublicModules       []module.Module
	ProtectedModules    []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
}

// Compose builds a root HTTP handler from module groups. Every mutation
// carrying a session cookie must prove same-origin; protected modules also
// require a session user.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)
	csrfWrap := requireCookieSessionSameOrigin(input.RequestSchemePolicy)

	for _, feature := range input.PublicModules {
		if feature == nil {
			return nil, fmt.Errorf("public module is nil")
		}
		if err := mountPublicModule(root, feature, input.Dependencies, seen, csrfWrap); err != nil {
			return nil, err
		}
	}

	protectedWrap := wrapProtectedModule(input.Dependencies, csrfWrap)
	for _, feature := range input.ProtectedModules {
		if feature == nil {
			return nil, fmt.Errorf("protected module is nil")
		}
		if err := mountProtectedModule(root, feature, input.Dependencies, seen, protectedWrap); err != nil {
			return nil, err
		}
	}

	return root, nil
}

func mountModule(
	root *http.ServeMux,
	feature module.Module,
	mount module.Mount,
	prefix string,
	seen map[string]string,
	wrap func(http.Handler) http.Handler,
) error {
	if root == nil || feature == nil {
		return nil
	}
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()

	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	root.Handle(prefix, handler)
	return nil
}

// mountWithSubtree mounts prefix and, for a slashless prefix, its subtree so
// module catch-alls own both.
func mountWithSubtree(root *http.ServeMux, feature module.Module, mount module.Mount, prefix string, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	if err := mountModule(root, feature, mount, prefix, seen, wrap); err != nil {
		return err
	}
	if alias := subtreePrefixAlias(prefix); alias != "" {
		if err := mountModule(root, feature, mount, alias, seen, wrap); err != nil {
			return err
		}
	}
	return nil
}

func mountPublicModule(root *http.ServeMux, feature module.Module, deps module.Dependencies, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, prefix, err := resolveMount(feature, deps)
	if err != nil {
		return err
	}
	if isProtectedPrefix(prefix) {
		return fmt.Errorf("module %q has protected prefix %q in public group", feature.ID(), prefix)
	}
	return mountWithSubtree(root, feature, mount, prefix, seen, wrap)
}

func mountProtectedModule(root *http.ServeMux, feature module.Module, deps module.Dependencies, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, prefix, err := resolveMount(feature, deps)
	if err != nil {
		return err
	}
	if !isProtectedPrefix(prefix) {
		return fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.Notes, prefix)
	}
	return mountWithSubtree(root, feature, mount, prefix, seen, wrap)
}

func isProtectedPrefix(prefix string) bool {
	return prefix == routepath.Notes || strings.HasPrefix(prefix, routepath.NotesPrefix)
}

func resolveMount(feature module.Module, deps module.Dependencies) (module.Mount, string, error) {
	if feature == nil {
		return module.Mount{}, "", fmt.Errorf("module is nil")
	}
	mount, err := feature.Mount(deps)
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := mount.Prefix
	if err := validatePrefix(prefix); err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, prefix, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if strings.ContainsAny(prefix, "{} ") {
		return fmt.Errorf("prefix must be a literal path")
	}
	return nil
}

func subtreePrefixAlias(prefix string) string {
	if prefix == "/" || strings.HasSuffix(prefix, "/") {
		return ""
	}
	return prefix + "/"
}

// requireSession admits requests whose session the backend confirmed. An
// unresolved check renders the loading page for reads and sends mutations
// back to the notes page; a rejected session goes to login.
func requireSession(deps module.Dependencies) func(http.Handler) http.Handler {
	base := modulehandler.NewBase(deps)
	return func(next http.Handler) http.Handler {
		if next == nil {
			return http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, state, resolved := base.AwaitSession(r)
			switch {
			case !resolved && !isMutationMethod(r):
				base.WriteLoading(w, r)
			case !resolved:
				httpx.WriteRedirect(w, r, routepath.Notes)
			case state.Authenticated():
				next.ServeHTTP(w, r)
			default:
				httpx.WriteRedirect(w, r, routepath.Login)
			}
		})
	}
}

func wrapProtectedModule(deps module.Dependencies, csrfWrap func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	authWrap := requireSession(deps)
	return func(next http.Handler) http.Handler {
		return csrfWrap(authWrap(next))
	}
}

func requireCookieSessionSameOrigin(policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutationMethod(r) || !sessioncookie.Present(r) {
				next.ServeHTTP(w, r)
				return
			}
			if !policy.SameOrigin(r) {
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
