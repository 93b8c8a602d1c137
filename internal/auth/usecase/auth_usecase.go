package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	authdomain "yakalahadi-backend/internal/auth/domain"
	authdto "yakalahadi-backend/internal/auth/dto"
	companyrepo "yakalahadi-backend/internal/company/repository"
	userrepo "yakalahadi-backend/internal/user/repository"
	"yakalahadi-backend/pkg/config"
)

// authUsecase implements AuthUsecase
type authUsecase struct {
	authClient  *fbauth.Client
	userRepo    userrepo.UserRepository
	companyRepo companyrepo.CompanyRepository
	config      *config.Config
	logger      *zap.Logger
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(authClient *fbauth.Client, userRepo userrepo.UserRepository, companyRepo companyrepo.CompanyRepository, cfg *config.Config, logger *zap.Logger) AuthUsecase {
	return &authUsecase{
		authClient:  authClient,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		config:      cfg,
		logger:      logger,
	}
}

// Login verifies the Firebase ID token, checks the caller against the single
// configured admin address and validates the time-based second factor, then
// issues the console session token. The second factor is one shared secret
// for every admin; a per-user secret would be stronger, but this matches the
// deployed console and its enrolled authenticators.
func (u *authUsecase) Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.LoginResponse, error) {
	token, err := u.authClient.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return nil, authdomain.ErrUnauthorized
	}

	email, _ := token.Claims["email"].(string)
	if email == "" || !strings.EqualFold(email, u.config.AdminEmail) {
		u.logger.Warn("console login rejected", zap.String("email", email))
		return nil, authdomain.ErrUnauthorized
	}

	if !totp.Validate(req.OTP, u.config.OTPSecret) {
		u.logger.Warn("console login rejected: bad one-time code", zap.String("email", email))
		return nil, authdomain.ErrUnauthorized
	}

	expiresAt := time.Now().Add(u.config.JWTExpiry)
	session := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   token.UID,
		"email": email,
		"exp":   expiresAt.Unix(),
		"iat":   time.Now().Unix(),
	})
	signed, err := session.SignedString([]byte(u.config.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &authdto.LoginResponse{Token: signed, Email: email, ExpiresAt: expiresAt}, nil
}

func (u *authUsecase) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", authdomain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", authdomain.ErrUnauthorized
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", authdomain.ErrUnauthorized
	}
	return email, nil
}

func (u *authUsecase) SetAdminClaim(ctx context.Context, uid string) error {
	user, err := u.getAuthUser(ctx, uid)
	if err != nil {
		return err
	}

	claims := map[string]interface{}{}
	for k, v := range user.CustomClaims {
		claims[k] = v
	}
	claims[authdomain.AdminClaim] = true
	return u.authClient.SetCustomUserClaims(ctx, uid, claims)
}

func (u *authUsecase) RemoveAdminClaim(ctx context.Context, uid string) error {
	user, err := u.getAuthUser(ctx, uid)
	if err != nil {
		return err
	}

	claims := map[string]interface{}{}
	for k, v := range user.CustomClaims {
		if k == authdomain.AdminClaim {
			continue
		}
		claims[k] = v
	}
	return u.authClient.SetCustomUserClaims(ctx, uid, claims)
}

func (u *authUsecase) ListAdminUsers(ctx context.Context) ([]*authdomain.AdminUser, error) {
	iter := u.authClient.Users(ctx, "")

	var admins []*authdomain.AdminUser
	for {
		user, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		isAdmin, _ := user.CustomClaims[authdomain.AdminClaim].(bool)
		if !isAdmin {
			continue
		}
		admins = append(admins, &authdomain.AdminUser{
			UID:      user.UID,
			Email:    user.Email,
			Disabled: user.Disabled,
			Admin:    true,
		})
	}
	return admins, nil
}

func (u *authUsecase) SetUserDisabled(ctx context.Context, uid string, disabled bool) error {
	if _, err := u.getAuthUser(ctx, uid); err != nil {
		return err
	}
	if _, err := u.authClient.UpdateUser(ctx, uid, (&fbauth.UserToUpdate{}).Disabled(disabled)); err != nil {
		return err
	}

	// Mirror the flag onto the user document so the console lists agree
	// with the auth record.
	if err := u.userRepo.SetDisabled(ctx, uid, disabled); err != nil {
		u.logger.Warn("auth record updated but user document flag not mirrored",
			zap.String("uid", uid), zap.Error(err))
	}
	return nil
}

// DeleteUserCompletely removes the auth record and any user/company
// documents stored under the same ID.
func (u *authUsecase) DeleteUserCompletely(ctx context.Context, uid string) error {
	if err := u.authClient.DeleteUser(ctx, uid); err != nil {
		if fbauth.IsUserNotFound(err) {
			return authdomain.ErrUserNotFound
		}
		return err
	}

	if err := u.userRepo.Delete(ctx, uid); err != nil {
		u.logger.Warn("auth record deleted but user document cleanup failed",
			zap.String("uid", uid), zap.Error(err))
	}
	if err := u.companyRepo.Delete(ctx, uid); err != nil {
		u.logger.Warn("auth record deleted but company document cleanup failed",
			zap.String("uid", uid), zap.Error(err))
	}
	return nil
}

func (u *authUsecase) getAuthUser(ctx context.Context, uid string) (*fbauth.UserRecord, error) {
	user, err := u.authClient.GetUser(ctx, uid)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return nil, authdomain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
