package form

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/tidwall/gjson"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/model"
)

var (
	// TimeRegex 24小时制 HH:MM。
	TimeRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
	// EmailRegex 与前台保持一致的邮箱格式。
	EmailRegex = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
)

const (
	ErrTimeFormatMsg  = "must be in HH:MM format (24-hour)"
	ErrEmailMsg       = "Please enter a valid email"
	ErrDateFormatMsg  = "must be a valid date"
	DateLayout        = "2006-01-02"
	dateTimeLayoutISO = "2006-01-02T15:04"
)

var ErrChannelIDRequired = errors.New("Channel ID is required")

// ParseDate 支持 yyyy-mm-dd、yyyy-mm-ddTHH:MM 与 RFC3339，结果转换到 loc。
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = utils.TrimQuotes(s)
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range []string{DateLayout, dateTimeLayoutISO} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// MinutesOfDay 将 HH:MM 转为当天的分钟数，格式错误返回 -1。
func MinutesOfDay(hhmm string) int {
	if !TimeRegex.MatchString(hhmm) {
		return -1
	}
	parts := strings.SplitN(hhmm, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

// Clock 统一为两位小时的 HH:MM，保证按字符串排序与时间顺序一致。
func Clock(hhmm string) string {
	m := MinutesOfDay(hhmm)
	if m < 0 {
		return hhmm
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseStringList 前端可能把数组放在多个同名字段里，也可能放一个 JSON 字符串或单个值。
func ParseStringList(raw []string) []string {
	res := make([]string, 0, len(raw))
	for _, item := range raw {
		item = utils.TrimQuotes(item)
		if item == "" {
			continue
		}
		if strings.HasPrefix(item, "[") && gjson.Valid(item) {
			for _, v := range gjson.Parse(item).Array() {
				if s := strings.TrimSpace(v.String()); s != "" {
					res = append(res, s)
				}
			}
			continue
		}
		res = append(res, item)
	}
	return res
}

// ParseSocialLinks 解析 JSON 字符串形式的社交账号。
func ParseSocialLinks(raw string) model.SocialLinks {
	raw = utils.TrimQuotes(raw)
	if raw == "" || !gjson.Valid(raw) {
		return model.SocialLinks{}
	}
	r := gjson.Parse(raw)
	return model.SocialLinks{
		Instagram: r.Get("ig").String(),
		Facebook:  firstNonEmpty(r.Get("fb").String(), r.Get("FB").String()),
		YouTube:   firstNonEmpty(r.Get("yt").String(), r.Get("YT").String()),
		Twitter:   r.Get("twitter").String(),
	}
}

// ParseStringMap 解析任意 JSON 对象为 string->string，非字符串值取其原始文本。
func ParseStringMap(raw string) (map[string]string, bool) {
	raw = utils.TrimQuotes(raw)
	if raw == "" || !gjson.Valid(raw) {
		return nil, false
	}
	r := gjson.Parse(raw)
	if !r.IsObject() {
		return nil, false
	}
	res := make(map[string]string)
	r.ForEach(func(key, value gjson.Result) bool {
		res[key.String()] = value.String()
		return true
	})
	return res, true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func stringsIn(vals []string) validation.InRule {
	items := make([]interface{}, len(vals))
	for i, v := range vals {
		items[i] = v
	}
	return validation.In(items...)
}

// dateRule 校验可解析的日期字符串。
var dateRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := ParseDate(s, time.Local); err != nil {
		return errors.New(ErrDateFormatMsg)
	}
	return nil
})
