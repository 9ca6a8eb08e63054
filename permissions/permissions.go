// Package permissions implements the access control model for SoftDesk
// resources. Each resource type has a two-phase policy: a collection check
// evaluated before any object is loaded (list/create), and an object check
// evaluated against a concrete record. Staff users bypass both phases.
package permissions

import (
	"gorm.io/gorm"

	"softdesk/models"
)

// Resource identifies which policy applies to a collection-level check.
type Resource int

const (
	ResourceProject Resource = iota
	ResourceContributor
	ResourceIssue
	ResourceComment
)

// Decision is the outcome of a collection-level check. Defer means the
// policy has no opinion: read-safe methods fall through to allow, everything
// else is denied. Reads are ultimately narrowed by the queryset scopes, so
// the collection check does not need the final say on them.
type Decision int

const (
	Deny Decision = iota
	Allow
	Defer
)

// ProjectResolver is implemented by every protected entity and returns the
// project that governs its visibility. Project returns itself; Issue returns
// its project; Comment returns its issue's project.
type ProjectResolver interface {
	ResolveProject(db *gorm.DB) (*models.Project, error)
}

// IsSafeMethod reports whether the HTTP method only observes state.
func IsSafeMethod(method string) bool {
	switch method {
	case "GET", "HEAD", "OPTIONS":
		return true
	}
	return false
}

// PermitCollection runs the collection-level check for a resource type.
// It returns nil when the request may proceed, ErrUnauthenticated when no
// identity is present, and ErrForbidden otherwise.
func PermitCollection(resource Resource, user *models.User, method string) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if user.IsStaff {
		return nil
	}

	switch collectionDecision(resource, method) {
	case Allow:
		return nil
	case Defer:
		if IsSafeMethod(method) {
			return nil
		}
		return ErrForbidden
	default:
		return ErrForbidden
	}
}

func collectionDecision(resource Resource, method string) Decision {
	switch resource {
	case ResourceProject:
		// Any authenticated user may create a project, becoming its author.
		if method == "POST" {
			return Allow
		}
		if IsSafeMethod(method) {
			return Defer
		}
		return Deny

	case ResourceContributor:
		// Writes are gated entirely at the object level: only the project
		// author may add or remove contributors.
		if IsSafeMethod(method) {
			return Defer
		}
		return Deny

	case ResourceIssue:
		// Membership of the target project is validated at creation time by
		// the handler; other writes defer to the object check.
		if IsSafeMethod(method) {
			return Defer
		}
		return Allow

	case ResourceComment:
		// Same creation rule as issues. Non-POST writes are decided against
		// the loaded comment.
		if method == "POST" {
			return Allow
		}
		if IsSafeMethod(method) {
			return Defer
		}
		return Deny
	}
	return Deny
}

// PermitObject runs the object-level check against a loaded record. The
// policy is selected by the concrete type of obj. A record whose owning
// project cannot be resolved is denied rather than raising.
func PermitObject(db *gorm.DB, user *models.User, method string, obj ProjectResolver) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if user.IsStaff {
		return nil
	}
	if obj == nil {
		return ErrForbidden
	}

	project, err := obj.ResolveProject(db)
	if err != nil || project == nil {
		// Fail closed on orphaned records.
		return ErrForbidden
	}

	var allowed bool
	switch o := obj.(type) {
	case *models.Project:
		allowed = permitProjectObject(user, method, o)
	case *models.Contributor:
		allowed = permitContributorObject(db, user, method, project)
	case *models.Issue:
		allowed = permitAuthoredObject(db, user, method, o.AuthorID, project)
	case *models.Comment:
		allowed = permitAuthoredObject(db, user, method, o.AuthorID, project)
	}

	if !allowed {
		return ErrForbidden
	}
	return nil
}

// permitProjectObject: the author may do anything to their project; everyone
// else gets read access only. List visibility is narrowed separately by
// ScopeProjects.
func permitProjectObject(user *models.User, method string, project *models.Project) bool {
	if IsAuthor(project, user) {
		return true
	}
	return IsSafeMethod(method)
}

// permitContributorObject: the project author manages membership freely;
// members may only view contributor rows.
func permitContributorObject(db *gorm.DB, user *models.User, method string, project *models.Project) bool {
	if IsAuthor(project, user) {
		return true
	}
	if IsMember(db, project, user) {
		return IsSafeMethod(method)
	}
	return false
}

// permitAuthoredObject covers issues and comments: the record's author may
// do anything, other project members may read, non-members get nothing.
func permitAuthoredObject(db *gorm.DB, user *models.User, method string, authorID uint, project *models.Project) bool {
	if authorID == user.ID {
		return true
	}
	if IsMember(db, project, user) {
		return IsSafeMethod(method)
	}
	return false
}
