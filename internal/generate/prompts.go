package generate

// summaryPrompt drives per-chunk summarization. The chunk text is interpolated
// at the end.
const summaryPrompt = `You are a highly skilled summarizer with expertise in distilling complex content into clear, impactful summaries.
Your task is to generate a professional, well-structured summary of the following text. Ensure the summary has all the important details and is concise.
Make it in paragraph format and bullet points if needed and bold the important key words.
Text to summarize:
%s`

// scriptPrompt drives per-chunk podcast script generation between the two
// fixed hosts.
const scriptPrompt = `You are a creative podcast scriptwriter.
Generate a conversational podcast script between two hosts, 'Alex' and 'Ben'.
Alex is the curious host who asks questions, and Ben is the expert who provides answers based on the provided text.
Format every line of dialogue as 'Alex: ...' or 'Ben: ...'.
The conversation should be engaging, natural, and based entirely on the following content.
Content:
%s`
