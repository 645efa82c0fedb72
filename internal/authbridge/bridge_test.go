package authbridge

//go:generate mockgen -source=bridge.go -destination=mocks/mocks.go -package=mocks Authenticator,SessionStore,HistoryLog,FlashMessages

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"membergate/internal/authbridge/mocks"
	dErrors "membergate/pkg/domain-errors"
)

type BridgeSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockAuth     *mocks.MockAuthenticator
	mockSessions *mocks.MockSessionStore
	mockHistory  *mocks.MockHistoryLog
	mockFlash    *mocks.MockFlashMessages
	bridge       *Bridge
}

const superadminPassword = "root-password"

func (s *BridgeSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockAuth = mocks.NewMockAuthenticator(s.ctrl)
	s.mockSessions = mocks.NewMockSessionStore(s.ctrl)
	s.mockHistory = mocks.NewMockHistoryLog(s.ctrl)
	s.mockFlash = mocks.NewMockFlashMessages(s.ctrl)

	hash, err := bcrypt.GenerateFromPassword([]byte(superadminPassword), bcrypt.MinCost)
	require.NoError(s.T(), err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.bridge = New(
		s.mockAuth, s.mockSessions, s.mockHistory, s.mockFlash,
		Superadmin{Login: "superadmin", PasswordHash: string(hash)},
		WithLogger(logger),
	)
}

func (s *BridgeSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestBridgeSuite(t *testing.T) {
	suite.Run(t, new(BridgeSuite))
}

func (s *BridgeSuite) TestLoginSuccess() {
	s.mockAuth.EXPECT().Authenticate(gomock.Any(), "rdurand", "secret").Return(3992, nil)
	s.mockSessions.EXPECT().SetIdentity(gomock.Any(), 3992).Return(nil)
	s.mockHistory.EXPECT().Add(gomock.Any(), "login", "").Return(nil)

	id, err := s.bridge.Login(context.Background(), "rdurand", "secret")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 3992, id)
}

func (s *BridgeSuite) TestLoginBlankCredentials() {
	for _, creds := range [][2]string{
		{"", "secret"},
		{"rdurand", ""},
		{"   ", "secret"},
		{"rdurand", "   "},
	} {
		_, err := s.bridge.Login(context.Background(), creds[0], creds[1])
		assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeAuthenticationFailed))
	}
}

func (s *BridgeSuite) TestLoginFailureAppendsHistory() {
	s.mockAuth.EXPECT().Authenticate(gomock.Any(), "rdurand", "wrong").Return(0, assert.AnError)
	s.mockHistory.EXPECT().Add(gomock.Any(), "authentication failed", "rdurand").Return(nil)

	_, err := s.bridge.Login(context.Background(), "rdurand", "wrong")
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeAuthenticationFailed))
}

func (s *BridgeSuite) TestSuperadminRefusedWithCorrectPassword() {
	s.mockFlash.EXPECT().AddError(gomock.Any(), msgSuperadminRefused)

	_, err := s.bridge.Login(context.Background(), "superadmin", superadminPassword)
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeAuthenticationFailed))
	assert.EqualError(s.T(), err, msgSuperadminRefused)
}

func (s *BridgeSuite) TestSuperadminRefusedWithWrongPassword() {
	s.mockFlash.EXPECT().AddError(gomock.Any(), msgSuperadminRefused)

	_, err := s.bridge.Login(context.Background(), "superadmin", "guess")
	assert.EqualError(s.T(), err, msgSuperadminRefused)
}

func (s *BridgeSuite) TestSuperadminLegacyHashStillRefused() {
	// Older installations store an unsalted md5 of the password.
	s.bridge.superadmin.PasswordHash = "6b63f2cf2a0933f0a4131ced5d7f476b" // md5("root-password")

	s.mockFlash.EXPECT().AddError(gomock.Any(), msgSuperadminRefused)

	_, err := s.bridge.Login(context.Background(), "superadmin", superadminPassword)
	assert.EqualError(s.T(), err, msgSuperadminRefused)
}

func (s *BridgeSuite) TestSessionFailureIsInternal() {
	s.mockAuth.EXPECT().Authenticate(gomock.Any(), "rdurand", "secret").Return(3992, nil)
	s.mockSessions.EXPECT().SetIdentity(gomock.Any(), 3992).Return(assert.AnError)

	_, err := s.bridge.Login(context.Background(), "rdurand", "secret")
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *BridgeSuite) TestLogout() {
	s.mockSessions.EXPECT().ClearIdentity(gomock.Any()).Return(nil)
	s.mockHistory.EXPECT().Add(gomock.Any(), "logout", "").Return(nil)

	assert.NoError(s.T(), s.bridge.Logout(context.Background()))
}
