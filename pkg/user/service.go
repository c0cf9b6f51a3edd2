package user

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/confdeck/deck-manager/internal/errdef"

	"github.com/confdeck/deck-manager/pkg/model"
	"github.com/go-mail/mail"
	"golang.org/x/crypto/scrypt"
)

func NewService(uiUrl string, repository *repository, dialer dailer) *Service {
	return &Service{
		uiUrl:      uiUrl,
		repository: repository,
		dailer:     dialer,
	}
}

type dailer interface {
	DialAndSend(m ...*mail.Message) error
}

type Service struct {
	uiUrl      string
	repository *repository
	dailer     dailer
}

func (s Service) SignUp(email string, password string) (*model.User, error) {
	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %s", err)
	}

	user := &model.User{
		Email:      email,
		EmailToken: uuid.New(),
		Password:   hashedPassword,
	}

	err = s.repository.create(user)
	if err != nil {
		return nil, err
	}

	// the account exists either way, delivery of the email is best effort
	err = s.sendValidationEmail(user)
	if err != nil {
		slog.Error("Failed to send validation email", "user", user.ID, "error", err)
	}

	return user, nil
}

func (s Service) sendValidationEmail(user *model.User) error {
	m := mail.NewMessage()
	m.SetHeader("From", "Confdeck <no-reply@confdeck.org>")
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", "Welcome to Confdeck")
	link := fmt.Sprintf("%s/validate/%s", s.uiUrl, user.EmailToken)
	body := fmt.Sprintf("Hello, please click the below link to verify your email.<br/>%s", link)
	m.SetBody("text/html", body)
	return s.dailer.DialAndSend(m)
}

func hashPassword(password string) (string, error) {
	// example for making salt - https://play.golang.org/p/_Aw6WeWC42I
	salt := make([]byte, 32)
	_, err := rand.Read(salt)
	if err != nil {
		return "", err
	}

	// using recommended cost parameters from - https://godoc.org/golang.org/x/crypto/scrypt
	hash, err := scrypt.Key([]byte(password), salt, 32768, 8, 1, 32)
	if err != nil {
		return "", err
	}

	hashedPassword := fmt.Sprintf("%s.%s", hex.EncodeToString(hash), hex.EncodeToString(salt))

	return hashedPassword, nil
}

func (s Service) ValidateEmail(token uuid.UUID) error {
	user, err := s.repository.findByEmailToken(token)
	if err != nil {
		return err
	}

	user.Validated = true
	return s.repository.save(user)
}

func (s Service) SignIn(email string, password string) (*model.User, error) {
	unauthorizedError := "invalid email and password combination"

	user, err := s.repository.findByEmail(email)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil, errdef.NewUnauthorized(unauthorizedError)
		}
		return nil, err
	}

	match, err := comparePasswords(user.Password, password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %s", err)
	}

	if !match {
		return nil, errdef.NewUnauthorized(unauthorizedError)
	}

	if !user.Validated {
		return nil, errdef.NewForbidden("account not validated")
	}

	return user, nil
}

func comparePasswords(storedPassword string, suppliedPassword string) (bool, error) {
	passwordAndSalt := strings.Split(storedPassword, ".")
	if len(passwordAndSalt) != 2 {
		return false, fmt.Errorf("wrong password/salt format: %s", storedPassword)
	}

	salt, err := hex.DecodeString(passwordAndSalt[1])
	if err != nil {
		return false, fmt.Errorf("unable to verify user password")
	}

	hash, err := scrypt.Key([]byte(suppliedPassword), salt, 32768, 8, 1, 32)
	if err != nil {
		return false, err
	}

	return hex.EncodeToString(hash) == passwordAndSalt[0], nil
}

func (s Service) FindById(id uint) (*model.User, error) {
	return s.repository.findById(id)
}
