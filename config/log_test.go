package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

func (s *ConfigTestSuite) TestConfigureLoggerLevels() {
	require := s.Require()

	ConfigureLogger("debug")
	require.Equal(logrus.DebugLevel, logrus.GetLevel())

	ConfigureLogger()
	require.Equal(logrus.WarnLevel, logrus.GetLevel())

	os.Setenv(LogLevelEnv, "trace")
	defer os.Unsetenv(LogLevelEnv)
	ConfigureLogger()
	require.Equal(logrus.TraceLevel, logrus.GetLevel())

	// an explicit level wins over the environment
	ConfigureLogger("info")
	require.Equal(logrus.InfoLevel, logrus.GetLevel())
}

func (s *ConfigTestSuite) TestConfigureLoggerFormat() {
	require := s.Require()

	os.Setenv(LogFormatEnv, "json")
	defer os.Unsetenv(LogFormatEnv)
	ConfigureLogger()
	_, ok := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
	require.True(ok)

	os.Setenv(LogFormatEnv, "text")
	ConfigureLogger()
	formatter, ok := logrus.StandardLogger().Formatter.(*logrus.TextFormatter)
	require.True(ok)
	require.True(formatter.DisableColors)
}

func (s *ConfigTestSuite) TestSecretLoadOrBlank() {
	require := s.Require()
	require.Equal("tre", NewRawSecret("tre").LoadOrBlank())
	require.Equal("", Secret("file:/nonexistent/solstake-secret").LoadOrBlank())
}
