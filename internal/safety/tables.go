package safety

// protectedNames holds variables whose removal breaks the shell, the login
// session, or the OS itself. Keys are upper-case.
var protectedNames = toSet(
	// Unix
	"PATH",
	"HOME",
	"USER",
	"LOGNAME",
	"SHELL",
	"PWD",

	// Windows
	"SYSTEMROOT",
	"SYSTEMDRIVE",
	"WINDIR",
	"COMSPEC",
	"PATHEXT",
	"USERNAME",
	"USERPROFILE",
	"USERDOMAIN",
	"HOMEDRIVE",
	"HOMEPATH",
	"APPDATA",
	"LOCALAPPDATA",
	"PROGRAMDATA",
	"PROGRAMFILES",
	"PROGRAMFILES(X86)",
	"COMMONPROGRAMFILES",
	"ALLUSERSPROFILE",
	"PUBLIC",
	"COMPUTERNAME",
	"OS",
	"PROCESSOR_ARCHITECTURE",
	"PROCESSOR_IDENTIFIER",
	"NUMBER_OF_PROCESSORS",
	"TEMP",
	"TMP",
)

// sensitiveNames holds variables that change how tools behave without being
// critical to the system. Keys are upper-case.
var sensitiveNames = toSet(
	"TMPDIR",
	"TERM",
	"LANG",
	"LC_ALL",
	"LC_CTYPE",
	"TZ",
	"EDITOR",
	"VISUAL",
	"PAGER",
	"HOSTNAME",
	"DISPLAY",
	"SSH_AUTH_SOCK",
	"LD_LIBRARY_PATH",
	"DYLD_LIBRARY_PATH",
	"MANPATH",
	"XDG_CONFIG_HOME",
	"XDG_DATA_HOME",
	"XDG_CACHE_HOME",
	"XDG_RUNTIME_DIR",
	"PSMODULEPATH",
	"JAVA_HOME",
	"CLASSPATH",
	"PYTHONPATH",
	"PYTHONHOME",
	"GOPATH",
	"GOROOT",
	"NODE_PATH",
	"PROMPT",
)

func toSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
