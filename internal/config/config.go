package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/Prakash-Shridharan/handshake/internal/utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string
	UniqueRunNumber  string
	UniqueRunnerID   string

	// Twilio / SendGrid for escalation alerts
	TwilioAccountSID string
	TwilioAuthToken  string
	SendGridAPIKey   string

	// Operations on-call contact for escalation alerts
	OnCallEmail string
	OnCallPhone string

	// Auth
	RSAPublicKey *rsa.PublicKey

	// LaunchDarkly flags
	LDFlag_SeedDemoData        bool
	LDFlag_CORSHighSecurity    bool
	LDFlag_SendgridSandboxMode bool
	LDFlag_SendgridFromEmail   string
	LDFlag_TwilioFromPhone     string
}

const (
	OrganizationName    = utils.OrganizationName
	LDConnectionTimeout = 5 * time.Second
)

// build-time overrides, set with -ldflags
var (
	AppName             string
	UniqueRunNumber     string
	UniqueRunnerID      string
	LDServerContextKey  string
	LDServerContextKind string
)

func LoadConfig() *Config {
	if AppName == "" {
		utils.Logger.Fatal("AppName ldflag missing")
	}
	if UniqueRunNumber == "" {
		utils.Logger.Fatal("UniqueRunNumber ldflag missing")
	}
	if UniqueRunnerID == "" {
		utils.Logger.Fatal("UniqueRunnerID ldflag missing")
	}
	if LDServerContextKey == "" || LDServerContextKind == "" {
		utils.Logger.Fatal("LD context ldflags missing")
	}

	utils.Logger.Info("Loading config for app: ", AppName)

	env := os.Getenv("ENV")
	if env == "" {
		utils.Logger.Fatal("ENV env var is missing")
	}
	appUrl := os.Getenv("APP_URL_FROM_ANYWHERE")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}

	pubB64 := os.Getenv("RSA_PUBLIC_KEY_BASE64")
	if pubB64 == "" {
		utils.Logger.Fatal("RSA_PUBLIC_KEY_BASE64 env var is missing")
	}
	pubPEM, err := base64.StdEncoding.DecodeString(pubB64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PUBLIC_KEY_BASE64 is not valid base64")
	}
	if block, _ := pem.Decode(pubPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for public key")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	twilioSID := os.Getenv("TWILIO_ACCOUNT_SID")
	if twilioSID == "" {
		utils.Logger.Fatal("TWILIO_ACCOUNT_SID env var is missing")
	}
	twilioToken := os.Getenv("TWILIO_AUTH_TOKEN")
	if twilioToken == "" {
		utils.Logger.Fatal("TWILIO_AUTH_TOKEN env var is missing")
	}
	sgAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sgAPIKey == "" {
		utils.Logger.Fatal("SENDGRID_API_KEY env var is missing")
	}

	onCallEmail := os.Getenv("ONCALL_EMAIL")
	if onCallEmail == "" {
		utils.Logger.Fatal("ONCALL_EMAIL env var is missing")
	}
	onCallPhone := os.Getenv("ONCALL_PHONE")
	if onCallPhone == "" {
		utils.Logger.Fatal("ONCALL_PHONE env var is missing")
	}

	ldSDKKey := os.Getenv("LD_SDK_KEY")
	if ldSDKKey == "" {
		utils.Logger.Fatal("LD_SDK_KEY env var is missing")
	}

	ldClient, err := ld.MakeClient(ldSDKKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	defer ldClient.Close()

	ctx := ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)

	seedDemoData, err := ldClient.BoolVariation("seed_demo_data", ctx, false)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving seed_demo_data flag")
	}
	utils.Logger.Debugf("seed_demo_data flag: %t", seedDemoData)

	corsHighSecurity, err := ldClient.BoolVariation("cors_high_security", ctx, true)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving cors_high_security flag")
	}
	utils.Logger.Debugf("cors_high_security flag: %t", corsHighSecurity)

	sgSandbox, err := ldClient.BoolVariation("sendgrid_sandbox_mode", ctx, false)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving sendgrid_sandbox_mode flag")
	}
	utils.Logger.Debugf("sendgrid_sandbox_mode flag: %t", sgSandbox)

	fromEmail, err := ldClient.StringVariation("sendgrid_from_email", ctx, "")
	if err != nil || fromEmail == "" {
		ldClient.Close()
		utils.Logger.Fatal("sendgrid_from_email flag error / empty")
	}
	utils.Logger.Debugf("sendgrid_from_email flag: %s", fromEmail)

	fromPhone, err := ldClient.StringVariation("twilio_from_phone", ctx, "")
	if err != nil || fromPhone == "" {
		ldClient.Close()
		utils.Logger.Fatal("twilio_from_phone flag error / empty")
	}
	utils.Logger.Debugf("twilio_from_phone flag: %s", fromPhone)

	utils.Logger.Infof("Loaded config for %s (%s)", AppName, env)

	return &Config{
		OrganizationName:           OrganizationName,
		AppName:                    AppName,
		AppPort:                    appPort,
		AppUrl:                     appUrl,
		UniqueRunNumber:            UniqueRunNumber,
		UniqueRunnerID:             UniqueRunnerID,
		TwilioAccountSID:           twilioSID,
		TwilioAuthToken:            twilioToken,
		SendGridAPIKey:             sgAPIKey,
		OnCallEmail:                onCallEmail,
		OnCallPhone:                onCallPhone,
		RSAPublicKey:               pubKey,
		LDFlag_SeedDemoData:        seedDemoData,
		LDFlag_CORSHighSecurity:    corsHighSecurity,
		LDFlag_SendgridSandboxMode: sgSandbox,
		LDFlag_SendgridFromEmail:   fromEmail,
		LDFlag_TwilioFromPhone:     fromPhone,
	}
}

func (c *Config) Close() {
}
