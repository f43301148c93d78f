package sanitize

// DefaultLists contains the shipped baseline rules. These hold even
// when no configuration file exists; a config file replaces them
// wholesale rather than merging.
var DefaultLists = Lists{
	MaxTextLen: DefaultMaxTextLen,

	CommandAllow: []string{
		"ls", "cat", "head", "tail", "grep", "find", "stat", "wc", "file",
		"df", "du", "free", "uptime", "w", "whoami", "id", "hostname",
		"uname", "date", "echo", "pwd", "ps", "ip", "ss", "ping",
		"sensors", "lsblk", "lscpu", "journalctl", "dmesg",
	},

	OverrideAllow: []string{
		"systemctl", "kill", "pkill", "rm", "mv", "cp", "mkdir", "touch",
		"chmod", "chown", "apt", "apt-get", "dnf", "yum", "docker",
		"qm", "pct", "mount", "umount", "reboot",
	},

	CommandDeny: []string{
		"rm -rf /", "rm -fr /", "rm -rf ~", "rm -rf /*",
		"mkfs", "fdisk", "parted", "wipefs", "blkdiscard",
		"dd if=/dev/zero", "of=/dev/", "> /dev/sd", "> /dev/nvme",
		":(){",
		"shutdown", "poweroff", "halt -", "init 0",
		"sudo su", "sudo -i",
		"chmod -r 777 /",
	},

	ChainAllow: []string{
		`ps aux \| grep [a-zA-Z0-9._-]+`,
		`journalctl -u [a-zA-Z0-9@._-]+ --no-pager \| tail -n [0-9]+`,
		`dmesg \| tail -n [0-9]+`,
	},

	ProtectedPaths: []string{
		"/etc", "/boot", "/sys", "/proc", "/dev", "/var/lib",
		"/root/.ssh",
		".ssh", ".aws", ".gnupg",
	},

	SecretPatterns: []string{
		"id_rsa", "id_ed25519", "id_ecdsa", "id_dsa",
		"*.pem", "*.key", "*.p12", "*.pfx", "*.kdbx",
		".env", ".netrc", ".npmrc", ".pgpass", ".htpasswd",
		"credentials", "secrets", "shadow", "gshadow",
		"*_history",
	},

	DeniedHosts: []string{
		"localhost",
		"metadata.google.internal",
		".internal", ".local", ".lan", ".home.arpa",
	},
}
