package emit

import (
	"strings"

	"github.com/arc-language/osslprobe/pkg/version"
)

// DownstreamTags derives the tags a dependent package uses from the conf and
// version_number directives alone: one osslconf_ tag per flag, plus the
// coarse ossl111 and ossl300 tags.
func DownstreamTags(conf, versionNumber string) ([]string, error) {
	var tags []string
	for _, flag := range strings.Split(conf, ",") {
		if flag = strings.TrimSpace(flag); flag != "" {
			tags = append(tags, ConfTagPrefix+flag)
		}
	}

	if versionNumber == "" {
		return tags, nil
	}
	n, err := version.ParseHex(versionNumber)
	if err != nil {
		return nil, err
	}
	if n >= version.MinSupported {
		tags = append(tags, "ossl111")
	}
	if n >= version.Line3Start {
		tags = append(tags, "ossl300")
	}
	return tags, nil
}

// DownstreamTagsFrom reads conf and version_number out of a directive list
func DownstreamTagsFrom(ds []Directive) ([]string, error) {
	conf, _ := Value(ds, KeyConf)
	num, _ := Value(ds, KeyVersionNum)
	return DownstreamTags(conf, num)
}
