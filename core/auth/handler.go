package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/learnhub/api/web"
	"github.com/irsalhamdi/learnhub/api/weberr"
	"github.com/irsalhamdi/learnhub/core/notify"
	"github.com/irsalhamdi/learnhub/validate"
)

const msgLoginFailed = "Invalid email or password"

func login(ctx context.Context, sm *scs.SessionManager, u User) error {
	if err := sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	sm.Put(ctx, userIDKey, u.ID)
	sm.Put(ctx, roleKey, u.Role)
	return nil
}

func HandleSignup(dir *Directory, sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var nu UserNew
		if err := web.Decode(w, r, &nu); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(nu); err != nil {
			return weberr.Invalid(err)
		}

		u, err := dir.Create(ctx, nu, RoleUser)
		if err != nil {
			if errors.Is(err, ErrEmailTaken) {
				return weberr.Conflict(err, weberr.WithFields(map[string]interface{}{"email": nu.Email}))
			}
			return fmt.Errorf("creating user: %w", err)
		}

		if err := login(ctx, sm, u); err != nil {
			return err
		}
		notify.FromContext(ctx).Notify(ctx, notify.Success, "Account created")

		return web.Respond(ctx, w, u, http.StatusCreated)
	}
}

func HandleLogin(dir *Directory, sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var cred Credentials
		if err := web.Decode(w, r, &cred); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(cred); err != nil {
			return weberr.Invalid(err)
		}

		u, err := dir.Authenticate(ctx, cred)
		if err != nil {
			notify.FromContext(ctx).Notify(ctx, notify.Error, msgLoginFailed)
			return weberr.NotAuthorized(err, weberr.WithFields(map[string]interface{}{"email": cred.Email}))
		}

		if err := login(ctx, sm, u); err != nil {
			return err
		}
		notify.FromContext(ctx).Notify(ctx, notify.Success, fmt.Sprintf("Welcome back, %s", u.Name))

		return web.Respond(ctx, w, u, http.StatusOK)
	}
}

// HandleLogout ends the login but keeps the session, so the cart and the
// wishlist survive.
func HandleLogout(sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := sm.RenewToken(ctx); err != nil {
			return fmt.Errorf("renewing session token: %w", err)
		}
		sm.Remove(ctx, userIDKey)
		sm.Remove(ctx, roleKey)

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleShowCurrent(dir *Directory) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := GetClaims(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		u, err := dir.Fetch(ctx, clm.UserID)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return weberr.NotFound(fmt.Errorf("user[%s] not found", clm.UserID))
			}
			return fmt.Errorf("fetching user[%s]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, u, http.StatusOK)
	}
}
