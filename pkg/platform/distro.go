package platform

import (
	"bufio"
	"os"
	"strings"
)

// Distro names used to pick a package name for remediation hints
const (
	DistroUnknown  = ""
	DistroDebian   = "debian"
	DistroUbuntu   = "ubuntu"
	DistroFedora   = "fedora"
	DistroArch     = "arch"
	DistroAlpine   = "alpine"
	DistroOpenSUSE = "opensuse"
)

// DetectDistro identifies the linux distribution of the build host
func DetectDistro() string {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		switch {
		case fileExists("/etc/fedora-release"):
			return DistroFedora
		case fileExists("/etc/alpine-release"):
			return DistroAlpine
		case fileExists("/etc/arch-release"):
			return DistroArch
		case fileExists("/etc/SuSE-release"):
			return DistroOpenSUSE
		case fileExists("/etc/debian_version"):
			return DistroDebian
		}
		return DistroUnknown
	}
	return DistroFromOSRelease(string(data))
}

// DistroFromOSRelease classifies the contents of an os-release file
func DistroFromOSRelease(content string) string {
	var id, idLike string
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok {
			continue
		}
		value = strings.ToLower(strings.Trim(value, `"'`))
		switch key {
		case "ID":
			id = value
		case "ID_LIKE":
			idLike = value
		}
	}

	for _, candidate := range append([]string{id}, strings.Fields(idLike)...) {
		switch candidate {
		case "ubuntu":
			return DistroUbuntu
		case "debian":
			return DistroDebian
		case "fedora", "rhel", "centos", "rocky", "almalinux":
			return DistroFedora
		case "arch", "manjaro", "endeavouros":
			return DistroArch
		case "alpine":
			return DistroAlpine
		case "opensuse", "opensuse-leap", "opensuse-tumbleweed", "sles", "suse":
			return DistroOpenSUSE
		}
	}
	return DistroUnknown
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
