package config

type Credentials struct {
	User     string
	Password string
}

type Host struct {
	Hostname string
	Port     string
}

type MySQL struct {
	Credentials
	Host
	Database string
}

type Amqp struct {
	Credentials
	Host
	VirtualHost string
}

type MongoDB struct {
	Credentials
	Host
	Database string
}

type Redis struct {
	Host
	Password string
}

type SMTP struct {
	Host
}

type HTTP struct {
	Method string
	Scheme string
	Host
	Path         string
	Payload      string
	Headers      map[string]string
	Timeout      string
	ExpectStatus string
}

// Probe describes a single service of the local stack that vexcheck
// can test for availability. Exactly one of the nested blocks is
// expected to be set.
type Probe struct {
	Name       string `hcl:",key"`
	Wait       bool
	Filesystem string
	MySQL      *MySQL
	Redis      *Redis
	MongoDB    *MongoDB
	Amqp       *Amqp
	HTTP       *HTTP
	SMTP       *SMTP
}

// Stack is the root of the vexcheck configuration; it aggregates all
// probe blocks found in the configuration directory.
type Stack struct {
	Probes []Probe `hcl:"probe"`
}
